package store

import (
	"context"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/query"
)

// Store defines the catch storage operations available to one request.
// Each method issues a single auto-committed statement.
type Store interface {
	ListCatches(ctx context.Context, search string, sort query.Sort) ([]catch.Record, error)
	GetCatch(ctx context.Context, id int64) (*catch.Record, error)
	CreateCatch(ctx context.Context, r catch.Record) (int64, error)
	UpdateCatch(ctx context.Context, id int64, r catch.Record) error
	DeleteCatch(ctx context.Context, id int64) error
	CountCatches(ctx context.Context) (int64, error)
	// Close releases the connection backing this Store.
	Close() error
}

// Acquirer hands out a Store scoped to one unit of work.
// Callers must Close the returned Store when done.
type Acquirer interface {
	Acquire(ctx context.Context) (Store, error)
}
