package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

var _ repository.Repository[catalog.Customer] = (*Collection[catalog.Customer, *catalog.Customer])(nil)
var _ repository.Repository[quote.Quotation] = (*Collection[quote.Quotation, *quote.Quotation])(nil)

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(zap.NewNop())

	a, err := s.Customers.Create(ctx, catalog.Customer{Name: "ABC Company"})
	require.NoError(t, err)
	b, err := s.Customers.Create(ctx, catalog.Customer{Name: "XYZ Enterprises"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	got, err := s.Customers.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "XYZ Enterprises", got.Name)

	got.Mobile = "8765432109"
	_, err = s.Customers.Update(ctx, got)
	require.NoError(t, err)
	got, err = s.Customers.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "8765432109", got.Mobile)

	require.NoError(t, s.Customers.Delete(ctx, a.ID))
	_, err = s.Customers.Get(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Customers.Delete(ctx, a.ID), repository.ErrNotFound)
	_, err = s.Customers.Update(ctx, catalog.Customer{ID: 42})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	c, err := s.Customers.Create(ctx, catalog.Customer{Name: "PQR Solutions"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID, "ids are not reused")

	list, err := s.Customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int64{2, 3}, []int64{list[0].ID, list[1].ID})
}

func TestQuotationsAreDetached(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(nil)

	q := quote.Quotation{
		Customer: &catalog.Customer{Name: "ABC Company"},
		Rooms:    []quote.Room{{ID: 1, Name: "Room 1"}},
	}
	saved, err := s.Quotations.Create(ctx, q)
	require.NoError(t, err)

	q.Customer.Name = "changed"
	saved.Rooms[0].Name = "changed"

	got, err := s.Quotations.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC Company", got.Customer.Name)
	assert.Equal(t, "Room 1", got.Rooms[0].Name)
}

func TestFilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "quotedesk.json")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	_, err = s.Products.Create(ctx, catalog.Product{Name: "Hub", MRP: decimal.RequireFromString("31160.50")})
	require.NoError(t, err)
	_, err = s.Quotations.Create(ctx, quote.Quotation{Number: "Q-2025-001", Status: quote.StatusPending, Rooms: []quote.Room{}})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	products, err := reopened.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, decimal.RequireFromString("31160.5").Equal(products[0].MRP))

	q, err := reopened.Quotations.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Q-2025-001", q.Number)

	next, err := reopened.Products.Create(ctx, catalog.Product{Name: "Switch"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotedesk.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path, nil)
	assert.Error(t, err)
}
