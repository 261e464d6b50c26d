package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

const customerColumns = `id, name, address, mobile, gst`

func scanCustomer(row pgx.Row) (catalog.Customer, error) {
	var c catalog.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Mobile, &c.GST)
	return c, err
}

func (r *CustomerRepository) Create(ctx context.Context, c catalog.Customer) (catalog.Customer, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, address, mobile, gst)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customerColumns,
		c.Name, c.Address, c.Mobile, c.GST)
	out, err := scanCustomer(row)
	if err != nil {
		return catalog.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return out, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (catalog.Customer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return catalog.Customer{}, notFound("customer", id, err)
	}
	return c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c catalog.Customer) (catalog.Customer, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, address = $3, mobile = $4, gst = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		c.ID, c.Name, c.Address, c.Mobile, c.GST)
	out, err := scanCustomer(row)
	if err != nil {
		return catalog.Customer{}, notFound("customer", c.ID, err)
	}
	return out, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "customers", id)
}

func (r *CustomerRepository) List(ctx context.Context) ([]catalog.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Customer, error) {
		return scanCustomer(row)
	})
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

const productColumns = `id, name, brand, specifications, mrp, photo_url`

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Specifications, &p.MRP, &p.PhotoURL)
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, brand, specifications, mrp, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		p.Name, p.Brand, p.Specifications, p.MRP, p.PhotoURL)
	out, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return out, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, notFound("product", id, err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, brand = $3, specifications = $4, mrp = $5, photo_url = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.Brand, p.Specifications, p.MRP, p.PhotoURL)
	out, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, notFound("product", p.ID, err)
	}
	return out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "products", id)
}

func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Product, error) {
		return scanProduct(row)
	})
}

type SalespersonRepository struct {
	pool *pgxpool.Pool
}

const salespersonColumns = `id, name, mobile, place, email`

func scanSalesperson(row pgx.Row) (catalog.Salesperson, error) {
	var s catalog.Salesperson
	err := row.Scan(&s.ID, &s.Name, &s.Mobile, &s.Place, &s.Email)
	return s, err
}

func (r *SalespersonRepository) Create(ctx context.Context, s catalog.Salesperson) (catalog.Salesperson, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO salespeople (name, mobile, place, email)
		VALUES ($1, $2, $3, $4)
		RETURNING `+salespersonColumns,
		s.Name, s.Mobile, s.Place, s.Email)
	out, err := scanSalesperson(row)
	if err != nil {
		return catalog.Salesperson{}, fmt.Errorf("insert salesperson: %w", err)
	}
	return out, nil
}

func (r *SalespersonRepository) Get(ctx context.Context, id int64) (catalog.Salesperson, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+salespersonColumns+` FROM salespeople WHERE id = $1`, id)
	s, err := scanSalesperson(row)
	if err != nil {
		return catalog.Salesperson{}, notFound("salesperson", id, err)
	}
	return s, nil
}

func (r *SalespersonRepository) Update(ctx context.Context, s catalog.Salesperson) (catalog.Salesperson, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE salespeople
		SET name = $2, mobile = $3, place = $4, email = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+salespersonColumns,
		s.ID, s.Name, s.Mobile, s.Place, s.Email)
	out, err := scanSalesperson(row)
	if err != nil {
		return catalog.Salesperson{}, notFound("salesperson", s.ID, err)
	}
	return out, nil
}

func (r *SalespersonRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "salespeople", id)
}

func (r *SalespersonRepository) List(ctx context.Context) ([]catalog.Salesperson, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+salespersonColumns+` FROM salespeople ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list salespeople: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Salesperson, error) {
		return scanSalesperson(row)
	})
}

// deleteByID removes one row; table is always a package constant.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	tag, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", repository.ErrNotFound, table, id)
	}
	return nil
}

func notFound(kind string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", repository.ErrNotFound, kind, id)
	}
	return fmt.Errorf("%s %d: %w", kind, id, err)
}
