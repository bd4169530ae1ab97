// Package catalog provides access to the product catalog.
package catalog

import (
	"context"
	"sync"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// Store fetches the published product catalog. Implementations must be
// safe for concurrent use and must treat an empty catalog as a valid
// result, not an error. Repeated fetches within one request are
// idempotent.
type Store interface {
	FetchAll(ctx context.Context) ([]model.Product, error)
	Close() error
}

// MemoryStore serves a fixed product slice. Used for DB-less runs and as
// a test double.
type MemoryStore struct {
	mu       sync.RWMutex
	products []model.Product
}

// NewMemoryStore creates a memory-backed catalog.
func NewMemoryStore(products []model.Product) *MemoryStore {
	return &MemoryStore{products: products}
}

// FetchAll returns a copy of the catalog snapshot.
func (s *MemoryStore) FetchAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Replace swaps the catalog snapshot.
func (s *MemoryStore) Replace(products []model.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
