package memory

import (
	"context"
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure TerritoryCache implements the interface.
var _ driven.TerritoryCache = (*TerritoryCache)(nil)

// TerritoryCache is an in-memory implementation of driven.TerritoryCache
// for testing.
type TerritoryCache struct {
	mu      sync.Mutex
	entries []domain.Territory
}

// NewTerritoryCache creates an empty in-memory territory cache.
func NewTerritoryCache() *TerritoryCache {
	return &TerritoryCache{}
}

// Load returns the cached dataset, or domain.ErrNotFound when empty.
func (c *TerritoryCache) Load(_ context.Context) ([]domain.Territory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Territory(nil), c.entries...), nil
}

// Save replaces the cached dataset wholesale.
func (c *TerritoryCache) Save(_ context.Context, entries []domain.Territory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append([]domain.Territory(nil), entries...)
	return nil
}
