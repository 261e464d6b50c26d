// Package repository defines the storage contract shared by every record
// kind. Adapters live under internal/infra.
package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a unique constraint violation, e.g. a quotation
	// number that is already taken.
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Entity is a record identified by a store-assigned integer id.
type Entity interface {
	GetID() int64
}

// Repository is create/read/update/delete over one record kind. Create
// assigns the id and returns the stored record. List returns records in
// id order.
type Repository[T Entity] interface {
	Create(ctx context.Context, v T) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, v T) (T, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]T, error)
}
