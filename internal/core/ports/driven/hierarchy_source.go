package driven

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// HierarchySource provides the full static territorial reference dataset:
// every comune with its province and region. It is fetched once per
// process and treated as immutable thereafter.
type HierarchySource interface {
	// Fetch returns the complete dataset.
	Fetch(ctx context.Context) ([]domain.Territory, error)
}

// TerritoryCache is a local durable cache of the territorial dataset so
// repeat runs can skip the network fetch. Implementations may be empty on
// first use; Load returns domain.ErrNotFound when nothing is cached.
type TerritoryCache interface {
	// Load returns the cached dataset.
	Load(ctx context.Context) ([]domain.Territory, error)

	// Save replaces the cached dataset wholesale.
	Save(ctx context.Context, entries []domain.Territory) error
}
