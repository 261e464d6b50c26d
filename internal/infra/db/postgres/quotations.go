package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

// QuotationRepository stores the rooms, the customer and salesperson
// snapshots and the company block as JSONB; money columns are NUMERIC.
type QuotationRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

const quotationColumns = `id, number, status, customer, salesperson, company, rooms,
	installation_charge, terms, total_amount, created_at`

type quotationDocs struct {
	customer, salesperson, company, rooms []byte
}

func encodeQuotation(q quote.Quotation) (quotationDocs, error) {
	var d quotationDocs
	var err error
	if d.customer, err = json.Marshal(q.Customer); err != nil {
		return d, fmt.Errorf("encode customer: %w", err)
	}
	if d.salesperson, err = json.Marshal(q.Salesperson); err != nil {
		return d, fmt.Errorf("encode salesperson: %w", err)
	}
	if d.company, err = json.Marshal(q.Company); err != nil {
		return d, fmt.Errorf("encode company: %w", err)
	}
	rooms := q.Rooms
	if rooms == nil {
		rooms = []quote.Room{}
	}
	if d.rooms, err = json.Marshal(rooms); err != nil {
		return d, fmt.Errorf("encode rooms: %w", err)
	}
	return d, nil
}

func scanQuotation(row pgx.Row) (quote.Quotation, error) {
	var q quote.Quotation
	var d quotationDocs
	err := row.Scan(&q.ID, &q.Number, &q.Status, &d.customer, &d.salesperson, &d.company, &d.rooms,
		&q.InstallationCharge, &q.Terms, &q.TotalAmount, &q.CreatedAt)
	if err != nil {
		return q, err
	}
	if err := json.Unmarshal(d.customer, &q.Customer); err != nil {
		return q, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(d.salesperson, &q.Salesperson); err != nil {
		return q, fmt.Errorf("decode salesperson: %w", err)
	}
	if err := json.Unmarshal(d.company, &q.Company); err != nil {
		return q, fmt.Errorf("decode company: %w", err)
	}
	if err := json.Unmarshal(d.rooms, &q.Rooms); err != nil {
		return q, fmt.Errorf("decode rooms: %w", err)
	}
	return q, nil
}

func (r *QuotationRepository) Create(ctx context.Context, q quote.Quotation) (quote.Quotation, error) {
	d, err := encodeQuotation(q)
	if err != nil {
		return quote.Quotation{}, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO quotations (number, status, customer, salesperson, customer_name, company, rooms,
			installation_charge, terms, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+quotationColumns,
		q.Number, q.Status, d.customer, d.salesperson, q.CustomerName(), d.company, d.rooms,
		q.InstallationCharge, q.Terms, q.TotalAmount, q.CreatedAt)
	out, err := scanQuotation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return quote.Quotation{}, fmt.Errorf("%w: quotation number %s", repository.ErrConflict, q.Number)
		}
		return quote.Quotation{}, fmt.Errorf("insert quotation: %w", err)
	}
	r.log.Debug("quotation inserted", zap.Int64("id", out.ID), zap.String("number", out.Number))
	return out, nil
}

func (r *QuotationRepository) Get(ctx context.Context, id int64) (quote.Quotation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
	q, err := scanQuotation(row)
	if err != nil {
		return quote.Quotation{}, notFound("quotation", id, err)
	}
	return q, nil
}

func (r *QuotationRepository) Update(ctx context.Context, q quote.Quotation) (quote.Quotation, error) {
	d, err := encodeQuotation(q)
	if err != nil {
		return quote.Quotation{}, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE quotations
		SET number = $2, status = $3, customer = $4, salesperson = $5, customer_name = $6,
			company = $7, rooms = $8, installation_charge = $9, terms = $10, total_amount = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING `+quotationColumns,
		q.ID, q.Number, q.Status, d.customer, d.salesperson, q.CustomerName(), d.company, d.rooms,
		q.InstallationCharge, q.Terms, q.TotalAmount)
	out, err := scanQuotation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return quote.Quotation{}, fmt.Errorf("%w: quotation number %s", repository.ErrConflict, q.Number)
		}
		return quote.Quotation{}, notFound("quotation", q.ID, err)
	}
	return out, nil
}

func (r *QuotationRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "quotations", id)
}

func (r *QuotationRepository) List(ctx context.Context) ([]quote.Quotation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+quotationColumns+` FROM quotations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (quote.Quotation, error) {
		return scanQuotation(row)
	})
}

// Numbers returns every number issued with the given prefix and year, for
// computing the next sequence value.
func (r *QuotationRepository) Numbers(ctx context.Context, prefix string, year int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT number FROM quotations WHERE number LIKE $1 ESCAPE '\'`,
		escapeLike(fmt.Sprintf("%s-%d-", prefix, year))+"%")
	if err != nil {
		return nil, fmt.Errorf("list quotation numbers: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally inside a LIKE pattern.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
