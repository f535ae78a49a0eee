package driving

import "github.com/civita-labs/urbanista-cli/internal/core/domain"

// Well-known publish source identifiers. Any other non-empty string is a
// valid source id; these exist so producers and tests agree on names.
const (
	// SourceSelector is the cascading territorial selector.
	SourceSelector = "selector"

	// SourceMap is the map picker translation boundary.
	SourceMap = "map"

	// SourceSystem is programmatic assignment (defaults, restored state).
	SourceSystem = "system"
)

// ScopeSubscriber receives the canonical scope after a successful publish.
type ScopeSubscriber func(scope domain.Scope)

// ScopeBroker is the synchronization core: it accepts scope writes from
// any surface, reconciles them into one canonical value, and republishes
// it to every other surface.
//
// Publishes are processed strictly in call order, and notification for a
// publish completes fully before the next publish is accepted. The
// tie-break rule between concurrent producers is last writer wins; there
// is no partial-field merge.
type ScopeBroker interface {
	// Publish validates the candidate against the hierarchy and, on
	// success, replaces the canonical scope wholesale and synchronously
	// notifies all subscribers except the originating source. An invalid
	// candidate yields domain.ErrScopeInconsistent and leaves the
	// canonical scope untouched.
	Publish(scope domain.Scope, sourceID string) error

	// Subscribe registers a callback under the given id. A subscriber
	// registered after a publish receives no replay; read Current
	// explicitly when catching up.
	Subscribe(id string, fn ScopeSubscriber)

	// Unsubscribe removes the callback registered under the id.
	Unsubscribe(id string)

	// Current returns the canonical scope.
	Current() domain.Scope
}
