package api

import (
	"context"
	"errors"

	"github.com/isdalog/isdalog/internal/store"
)

// storeContextKey is the context key for the request's store.
type storeContextKey struct{}

// ErrNoStoreInContext indicates no store was found in the context.
var ErrNoStoreInContext = errors.New("no store in context")

// WithStore returns a new context with the store attached.
func WithStore(ctx context.Context, s store.Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, s)
}

// StoreFromContext extracts the store from the context.
// Returns ErrNoStoreInContext if not present or nil.
func StoreFromContext(ctx context.Context) (store.Store, error) {
	s, ok := ctx.Value(storeContextKey{}).(store.Store)
	if !ok || s == nil {
		return nil, ErrNoStoreInContext
	}
	return s, nil
}

// MustStoreFromContext extracts the store or panics.
// Use only when StoreMiddleware guarantees store presence.
func MustStoreFromContext(ctx context.Context) store.Store {
	s, err := StoreFromContext(ctx)
	if err != nil {
		panic("store not in context: middleware misconfiguration")
	}
	return s
}
