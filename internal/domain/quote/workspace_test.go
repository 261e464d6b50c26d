package quote

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws := NewWorkspace()
	clock := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return clock }

	a := ws.Open(newTestDraft())
	b := ws.Open(newTestDraft())
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, clock, a.UpdatedAt)

	clock = clock.Add(time.Minute)
	got, err := ws.Edit(a.ID, func(d *Draft) error {
		d.AddRoom(decimal.NewFromInt(18))
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, got.Quotation.Rooms, 1)
	assert.Equal(t, clock, got.UpdatedAt)

	got.Quotation.Rooms[0].Name = "mutated copy"
	again, err := ws.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Room 1", again.Quotation.Rooms[0].Name)

	require.NoError(t, ws.Discard(a.ID))
	_, err = ws.Get(a.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, ws.Discard(a.ID), ErrDraftNotFound)

	list := ws.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestWorkspaceEditError(t *testing.T) {
	ws := NewWorkspace()
	dr := ws.Open(newTestDraft())
	boom := errors.New("boom")

	_, err := ws.Edit(dr.ID, func(d *Draft) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, err = ws.Edit(99, func(d *Draft) error { return nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestWorkspaceConcurrentEdits(t *testing.T) {
	ws := NewWorkspace()
	dr := ws.Open(newTestDraft())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ws.Edit(dr.ID, func(d *Draft) error {
				d.AddRoom(decimal.Zero)
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := ws.Get(dr.ID)
	require.NoError(t, err)
	assert.Len(t, got.Quotation.Rooms, 20)
}
