package driving

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// HierarchyService exposes the loaded territorial hierarchy.
// Enumeration methods are pure and deterministic given the loaded dataset:
// unknown or empty inputs yield empty slices, never errors.
type HierarchyService interface {
	// Load fetches and indexes the dataset. Concurrent calls share one
	// in-flight fetch; once loaded, Load is a cheap no-op.
	Load(ctx context.Context) error

	// Regions returns the distinct region names, sorted.
	Regions() []string

	// Provinces returns the distinct province names of the region, sorted.
	Provinces(region string) []string

	// Municipalities returns the distinct comune names of the
	// (region, province) pair, sorted.
	Municipalities(region, province string) []string

	// Validate checks that the scope's fields form a consistent chain:
	// province within region, municipality within province. Returns
	// domain.ErrScopeInconsistent on violation.
	Validate(scope domain.Scope) error

	// FindMunicipality resolves a comune name (case-insensitive) to its
	// full territory entry.
	FindMunicipality(name string) (domain.Territory, bool)
}
