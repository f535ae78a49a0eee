package driving

import "github.com/civita-labs/urbanista-cli/internal/core/domain"

// ScopeSelector is the cascading four-level territorial chooser. Choice
// lists below a changed level are recomputed from the hierarchy, invalid
// downstream choices are cleared, and every settled change publishes
// exactly one scope to the broker.
type ScopeSelector interface {
	// SetRegion settles a region choice. An empty value is the
	// placeholder: it clears every level and publishes a national scope.
	SetRegion(region string) error

	// SetProvince settles a province choice under the current region.
	// Empty clears province and municipality.
	SetProvince(province string) error

	// SetMunicipality settles a comune choice under the current pair.
	// Empty clears only the municipality.
	SetMunicipality(municipality string) error

	// Selection returns the selector's current draft selection.
	Selection() domain.Scope

	// RegionOptions returns the selectable regions.
	RegionOptions() []string

	// ProvinceOptions returns the provinces valid under the current region.
	ProvinceOptions() []string

	// MunicipalityOptions returns the comuni valid under the current pair.
	MunicipalityOptions() []string
}
