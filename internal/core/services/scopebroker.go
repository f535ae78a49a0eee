package services

import (
	"fmt"
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure ScopeBroker implements the interface.
var _ driving.ScopeBroker = (*ScopeBroker)(nil)

// ScopeValidator checks a candidate scope against the territorial
// hierarchy. HierarchyIndex satisfies it.
type ScopeValidator interface {
	Validate(scope domain.Scope) error
}

// subscriber pairs a source id with its callback. The slice preserves
// registration order so notification order is deterministic.
type subscriber struct {
	id string
	fn driving.ScopeSubscriber
}

// ScopeBroker holds the single canonical scope and fans successful writes
// out to every surface except the one that produced them.
//
// Publish is the sole serialization point: the mutex is held across
// validation, the swap, and the synchronous subscriber fan-out, so a
// publish's notification completes fully before the next publish is
// accepted and no subscriber can observe a half-applied scope. Between
// two producers racing in the same tick, the last writer wins; there is
// no merge.
type ScopeBroker struct {
	validator ScopeValidator

	mu      sync.Mutex
	current domain.Scope
	subs    []subscriber
}

// NewScopeBroker creates a broker starting at the national scope.
func NewScopeBroker(validator ScopeValidator) *ScopeBroker {
	return &ScopeBroker{
		validator: validator,
		current:   domain.NationalScope(),
	}
}

// Publish validates the candidate and, on success, replaces the canonical
// scope wholesale and synchronously notifies all subscribers except the
// originating source. On failure the canonical scope is untouched.
func (b *ScopeBroker) Publish(scope domain.Scope, sourceID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	candidate := scope.Normalised()
	if err := b.validator.Validate(candidate); err != nil {
		logger.Debug("Scope publish from %q rejected: %v", sourceID, err)
		return fmt.Errorf("publish from %q: %w", sourceID, err)
	}

	b.current = candidate
	logger.Debug("Scope published by %q: %s [%s]", sourceID, candidate.Describe(), candidate.Level)

	// Echo suppression: the surface that just produced the value already
	// reflects it and must not be re-notified.
	for _, sub := range b.subs {
		if sub.id == sourceID {
			continue
		}
		sub.fn(candidate)
	}

	return nil
}

// Subscribe registers the callback under the id, replacing any previous
// registration with the same id. No replay is delivered; read Current
// explicitly when catching up after subscribing.
//
// Callbacks run synchronously under the broker's lock and must not call
// back into the broker.
func (b *ScopeBroker) Subscribe(id string, fn driving.ScopeSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.subs {
		if b.subs[i].id == id {
			b.subs[i].fn = fn
			return
		}
	}
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
}

// Unsubscribe removes the callback registered under the id.
func (b *ScopeBroker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.subs {
		if b.subs[i].id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Current returns the canonical scope.
func (b *ScopeBroker) Current() domain.Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
