package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrate runs a goose command ("up", "down", "status" or "version")
// against the embedded migrations.
func (db *DB) Migrate(ctx context.Context, command string) error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to run up migrations: %w", err)
		}
	case "down":
		if err := goose.DownContext(ctx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
	default:
		return fmt.Errorf("unknown migrate command: %s", command)
	}
	return nil
}
