package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

func TestMemoryStoreFetchAllCopies(t *testing.T) {
	store := NewMemoryStore(SampleProducts())

	got, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// Mutating the returned slice must not affect later fetches.
	got[0].Title = "tampered"
	again, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", again[0].Title)
}

func TestMemoryStoreReplace(t *testing.T) {
	store := NewMemoryStore(nil)

	got, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	store.Replace([]model.Product{{ID: "p1", Title: "Oak Chair", Price: 89.99}})
	got, err = store.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	store := NewMemoryStore(SampleProducts())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleProductsAreWellFormed(t *testing.T) {
	seen := map[string]struct{}{}
	for _, p := range SampleProducts() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Slug)
		assert.Greater(t, p.Price, 0.0)
		_, dup := seen[p.ID]
		assert.False(t, dup, "duplicate product id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}
