package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("postgres connected",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
	)
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() { db.Pool.Close() }

// Repositories bundles one repository per record kind over the same pool.
type Repositories struct {
	Customers   *CustomerRepository
	Products    *ProductRepository
	Salespeople *SalespersonRepository
	Quotations  *QuotationRepository
}

func (db *DB) Repositories() Repositories {
	return Repositories{
		Customers:   &CustomerRepository{pool: db.Pool},
		Products:    &ProductRepository{pool: db.Pool},
		Salespeople: &SalespersonRepository{pool: db.Pool},
		Quotations:  &QuotationRepository{pool: db.Pool, log: db.log},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
