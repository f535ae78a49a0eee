package services

import (
	"fmt"
	"strings"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// localityPrefixes are the locality-type labels map providers prepend to
// place names. Stripping them is the map translation boundary's job, not
// the broker's.
var localityPrefixes = []string{
	"Comune di ",
	"Città di ",
	"Città metropolitana di ",
	"Municipio di ",
}

// TranslateLocation converts a map collaborator's selected-location event
// into a full municipal scope by resolving the cleaned name against the
// hierarchy. Names the hierarchy cannot place are rejected: nothing gets
// published for them.
func TranslateLocation(ev domain.LocationEvent, hierarchy driving.HierarchyService) (domain.Scope, error) {
	name := strings.TrimSpace(ev.Name)
	for _, prefix := range localityPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
			break
		}
	}
	if name == "" {
		return domain.Scope{}, fmt.Errorf("map location: %w: empty name", domain.ErrInvalidInput)
	}

	entry, ok := hierarchy.FindMunicipality(name)
	if !ok {
		return domain.Scope{}, fmt.Errorf("map location %q: %w", name, domain.ErrScopeInconsistent)
	}

	return domain.NewScope(entry.Region, entry.Province, entry.Municipality), nil
}

// PublishLocation translates the event and publishes the resulting scope
// under driving.SourceMap. On any failure the canonical scope is left
// untouched.
func PublishLocation(
	ev domain.LocationEvent,
	hierarchy driving.HierarchyService,
	broker driving.ScopeBroker,
) (domain.Scope, error) {
	scope, err := TranslateLocation(ev, hierarchy)
	if err != nil {
		return domain.Scope{}, err
	}
	if err := broker.Publish(scope, driving.SourceMap); err != nil {
		return domain.Scope{}, err
	}
	return scope, nil
}
