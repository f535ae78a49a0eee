package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

func TestScopeBroker_PublishValidTriple(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	for _, entry := range testDataset() {
		scope := domain.NewScope(entry.Region, entry.Province, entry.Municipality)
		require.NoError(t, broker.Publish(scope, driving.SourceSelector))
		assert.Equal(t, domain.LevelMunicipal, broker.Current().Level)
		assert.Equal(t, entry.Municipality, broker.Current().Municipality)
	}
}

func TestScopeBroker_InconsistentWriteLeavesCanonicalUntouched(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	good := domain.NewScope("Lazio", "Viterbo", "Tarquinia")
	require.NoError(t, broker.Publish(good, driving.SourceSelector))

	bad := domain.NewScope("Toscana", "Viterbo", "")
	err := broker.Publish(bad, driving.SourceMap)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScopeInconsistent)
	assert.Equal(t, good, broker.Current())
}

func TestScopeBroker_NotifiesAllButOriginatingSource(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	var selectorSide, mapSide, chatSide notifyRecorder
	broker.Subscribe(driving.SourceSelector, selectorSide.record)
	broker.Subscribe(driving.SourceMap, mapSide.record)
	broker.Subscribe("chat", chatSide.record)

	scope := domain.NewScope("Lazio", "", "")
	require.NoError(t, broker.Publish(scope, driving.SourceSelector))

	assert.Empty(t, selectorSide.all(), "the originating surface must not be echoed")
	assert.Equal(t, []domain.Scope{scope}, mapSide.all())
	assert.Equal(t, []domain.Scope{scope}, chatSide.all())
}

func TestScopeBroker_LastWriterWins(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	fromSelector := domain.NewScope("Lazio", "Viterbo", "Tarquinia")
	fromMap := domain.NewScope("Toscana", "Grosseto", "Grosseto")

	require.NoError(t, broker.Publish(fromSelector, driving.SourceSelector))
	require.NoError(t, broker.Publish(fromMap, driving.SourceMap))

	assert.Equal(t, fromMap, broker.Current(), "the second publish determines the canonical value")
}

func TestScopeBroker_NoReplayOnSubscribe(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	require.NoError(t, broker.Publish(domain.NewScope("Lazio", "", ""), driving.SourceSelector))

	var late notifyRecorder
	broker.Subscribe("late", late.record)
	assert.Empty(t, late.all())

	// Catching up is an explicit read.
	assert.Equal(t, "Lazio", broker.Current().Region)
}

func TestScopeBroker_Unsubscribe(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	var rec notifyRecorder
	broker.Subscribe("surface", rec.record)
	broker.Unsubscribe("surface")

	require.NoError(t, broker.Publish(domain.NewScope("Toscana", "", ""), driving.SourceSelector))
	assert.Empty(t, rec.all())
}

func TestScopeBroker_PublishNormalisesLevel(t *testing.T) {
	idx := loadedIndex(t)
	broker := NewScopeBroker(idx)

	// A candidate with a stale level label is re-derived on publish.
	stale := domain.Scope{Region: "Lazio", Level: domain.LevelNational}
	require.NoError(t, broker.Publish(stale, driving.SourceSystem))
	assert.Equal(t, domain.LevelRegional, broker.Current().Level)
}

func TestScopeBroker_StartsNational(t *testing.T) {
	broker := NewScopeBroker(loadedIndex(t))
	assert.True(t, broker.Current().IsNational())
	assert.Equal(t, domain.LevelNational, broker.Current().Level)
}
