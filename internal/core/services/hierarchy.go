package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure HierarchyIndex implements the interface.
var _ driving.HierarchyService = (*HierarchyIndex)(nil)

// HierarchyIndex loads the static territorial dataset once and exposes
// deterministic enumeration and lookup over it. The index is cached for
// the process lifetime and never mutated after construction.
type HierarchyIndex struct {
	source driven.HierarchySource
	cache  driven.TerritoryCache // optional

	mu      sync.Mutex
	loaded  bool
	loading chan struct{}
	loadErr error

	regions   []string
	provinces map[string][]string            // region → sorted provinces
	comuni    map[string]map[string][]string // region → province → sorted comuni
	byComune  map[string]domain.Territory    // lower-cased comune name → entry
}

// NewHierarchyIndex creates an index over the given source. The cache is
// optional; when present it is consulted before the source and refreshed
// after a successful fetch.
func NewHierarchyIndex(source driven.HierarchySource, cache driven.TerritoryCache) *HierarchyIndex {
	return &HierarchyIndex{
		source: source,
		cache:  cache,
	}
}

// Load fetches and indexes the dataset. A concurrent second call while a
// load is in flight shares the same fetch instead of triggering a
// duplicate one; a failed load can be retried.
func (h *HierarchyIndex) Load(ctx context.Context) error {
	h.mu.Lock()
	if h.loaded {
		h.mu.Unlock()
		return nil
	}
	if h.loading != nil {
		// Another caller is already fetching; wait for its outcome.
		ch := h.loading
		h.mu.Unlock()
		<-ch

		h.mu.Lock()
		defer h.mu.Unlock()
		return h.loadErr
	}

	ch := make(chan struct{})
	h.loading = ch
	h.mu.Unlock()

	entries, err := h.fetch(ctx)

	h.mu.Lock()
	if err != nil {
		h.loadErr = fmt.Errorf("%w: %v", domain.ErrHierarchyUnavailable, err)
	} else {
		h.buildIndex(entries)
		h.loaded = true
		h.loadErr = nil
		logger.Info("Territorial hierarchy loaded: %d comuni, %d regioni", len(entries), len(h.regions))
	}
	result := h.loadErr
	h.loading = nil
	close(ch)
	h.mu.Unlock()

	return result
}

// fetch resolves the dataset, consulting the local cache before the
// network source.
func (h *HierarchyIndex) fetch(ctx context.Context) ([]domain.Territory, error) {
	if h.cache != nil {
		cached, err := h.cache.Load(ctx)
		if err == nil && len(cached) > 0 {
			logger.Debug("Territorial dataset served from cache (%d entries)", len(cached))
			return cached, nil
		}
	}

	entries, err := h.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching territorial dataset: %w", err)
	}

	if h.cache != nil {
		if err := h.cache.Save(ctx, entries); err != nil {
			logger.Warn("Caching territorial dataset failed: %v", err)
		}
	}

	return entries, nil
}

// buildIndex constructs the sorted, de-duplicated lookup structures.
// Caller must hold the lock.
func (h *HierarchyIndex) buildIndex(entries []domain.Territory) {
	regionSet := make(map[string]bool)
	h.provinces = make(map[string][]string)
	h.comuni = make(map[string]map[string][]string)
	h.byComune = make(map[string]domain.Territory)

	provinceSets := make(map[string]map[string]bool)
	comuneSets := make(map[string]map[string]map[string]bool)

	for _, e := range entries {
		if e.Region == "" || e.Municipality == "" {
			continue
		}
		regionSet[e.Region] = true

		if provinceSets[e.Region] == nil {
			provinceSets[e.Region] = make(map[string]bool)
			comuneSets[e.Region] = make(map[string]map[string]bool)
		}
		if e.Province != "" {
			provinceSets[e.Region][e.Province] = true
			if comuneSets[e.Region][e.Province] == nil {
				comuneSets[e.Region][e.Province] = make(map[string]bool)
			}
			comuneSets[e.Region][e.Province][e.Municipality] = true
		}

		key := strings.ToLower(e.Municipality)
		if _, exists := h.byComune[key]; !exists {
			h.byComune[key] = e
		}
	}

	h.regions = sortedKeys(regionSet)
	for region, set := range provinceSets {
		h.provinces[region] = sortedKeys(set)
		h.comuni[region] = make(map[string][]string)
		for province, comuni := range comuneSets[region] {
			h.comuni[region][province] = sortedKeys(comuni)
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Regions returns the distinct region names, sorted.
func (h *HierarchyIndex) Regions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.regions...)
}

// Provinces returns the distinct province names of the region, sorted.
// Unknown or empty regions yield an empty slice.
func (h *HierarchyIndex) Provinces(region string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.provinces[region]...)
}

// Municipalities returns the distinct comune names of the pair, sorted.
// Unknown inputs yield an empty slice.
func (h *HierarchyIndex) Municipalities(region, province string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comuni[region] == nil {
		return nil
	}
	return append([]string(nil), h.comuni[region][province]...)
}

// Validate checks the scope's fields form a consistent chain in the
// loaded hierarchy. National scopes are always valid.
func (h *HierarchyIndex) Validate(scope domain.Scope) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if scope.IsNational() {
		return nil
	}

	if scope.Region == "" {
		return fmt.Errorf("%w: %q has no region", domain.ErrScopeInconsistent, scope.Describe())
	}
	provinces, known := h.provinces[scope.Region]
	if !known {
		return fmt.Errorf("%w: unknown region %q", domain.ErrScopeInconsistent, scope.Region)
	}

	if scope.Province == "" {
		if scope.Municipality != "" {
			return fmt.Errorf("%w: comune %q has no province", domain.ErrScopeInconsistent, scope.Municipality)
		}
		return nil
	}
	if !contains(provinces, scope.Province) {
		return fmt.Errorf("%w: province %q is not in region %q",
			domain.ErrScopeInconsistent, scope.Province, scope.Region)
	}

	if scope.Municipality == "" {
		return nil
	}
	if !contains(h.comuni[scope.Region][scope.Province], scope.Municipality) {
		return fmt.Errorf("%w: comune %q is not in province %q",
			domain.ErrScopeInconsistent, scope.Municipality, scope.Province)
	}

	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// FindMunicipality resolves a comune name case-insensitively. When two
// comuni share a name the dataset's first occurrence wins.
func (h *HierarchyIndex) FindMunicipality(name string) (domain.Territory, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.byComune[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}
