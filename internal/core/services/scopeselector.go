package services

import (
	"fmt"
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// Ensure ScopeSelector implements the interface.
var _ driving.ScopeSelector = (*ScopeSelector)(nil)

// ScopeSelector is the cascading four-level chooser. A change at one
// level recomputes the choice lists below it and clears any downstream
// choice that is no longer valid, then publishes exactly one scope.
//
// The selector keeps a draft selection; it only becomes the draft when
// the broker accepts the publish. A rejected publish leaves both the
// draft and the canonical scope unchanged.
type ScopeSelector struct {
	hierarchy driving.HierarchyService
	broker    driving.ScopeBroker

	mu           sync.Mutex
	region       string
	province     string
	municipality string
}

// NewScopeSelector creates a selector over the hierarchy, publishing to
// the broker under driving.SourceSelector.
func NewScopeSelector(hierarchy driving.HierarchyService, broker driving.ScopeBroker) *ScopeSelector {
	return &ScopeSelector{
		hierarchy: hierarchy,
		broker:    broker,
	}
}

// SetRegion settles a region choice. Choosing the placeholder (empty)
// clears every level and widens the published scope to national.
func (s *ScopeSelector) SetRegion(region string) error {
	s.mu.Lock()
	province := s.province
	municipality := s.municipality
	s.mu.Unlock()

	if region == "" {
		province, municipality = "", ""
	} else {
		// Cascade: drop downstream choices invalidated by the new region.
		if !contains(s.hierarchy.Provinces(region), province) {
			province, municipality = "", ""
		} else if !contains(s.hierarchy.Municipalities(region, province), municipality) {
			municipality = ""
		}
	}

	return s.commit(region, province, municipality)
}

// SetProvince settles a province choice under the current region.
func (s *ScopeSelector) SetProvince(province string) error {
	s.mu.Lock()
	region := s.region
	municipality := s.municipality
	s.mu.Unlock()

	if province == "" || !contains(s.hierarchy.Municipalities(region, province), municipality) {
		municipality = ""
	}

	return s.commit(region, province, municipality)
}

// SetMunicipality settles a comune choice under the current pair.
func (s *ScopeSelector) SetMunicipality(municipality string) error {
	s.mu.Lock()
	region, province := s.region, s.province
	s.mu.Unlock()

	return s.commit(region, province, municipality)
}

// commit publishes the candidate and adopts it as the draft only when the
// broker accepts it. The selector lock is never held across the publish:
// broker notifications may re-enter the selector through Adopt.
func (s *ScopeSelector) commit(region, province, municipality string) error {
	candidate := domain.NewScope(region, province, municipality)
	if err := s.broker.Publish(candidate, driving.SourceSelector); err != nil {
		return fmt.Errorf("selector: %w", err)
	}

	s.mu.Lock()
	s.region = region
	s.province = province
	s.municipality = municipality
	s.mu.Unlock()
	return nil
}

// Selection returns the current draft selection.
func (s *ScopeSelector) Selection() domain.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewScope(s.region, s.province, s.municipality)
}

// RegionOptions returns the selectable regions.
func (s *ScopeSelector) RegionOptions() []string {
	return s.hierarchy.Regions()
}

// ProvinceOptions returns the provinces valid under the current region.
func (s *ScopeSelector) ProvinceOptions() []string {
	s.mu.Lock()
	region := s.region
	s.mu.Unlock()
	return s.hierarchy.Provinces(region)
}

// MunicipalityOptions returns the comuni valid under the current pair.
func (s *ScopeSelector) MunicipalityOptions() []string {
	s.mu.Lock()
	region, province := s.region, s.province
	s.mu.Unlock()
	return s.hierarchy.Municipalities(region, province)
}

// Adopt aligns the selector's draft with a scope produced elsewhere (map
// pick, programmatic default) without republishing it. Wire it to the
// broker under driving.SourceSelector so the selector's own publishes
// skip it.
func (s *ScopeSelector) Adopt(scope domain.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.region = scope.Region
	s.province = scope.Province
	s.municipality = scope.Municipality
}
