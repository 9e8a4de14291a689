package engine

import (
	"testing"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationsBegin(t *testing.T) {
	m := NewGenerations()

	g1, fresh := m.Begin("fire")
	require.True(t, fresh)
	assert.Equal(t, core.GenerationID(1), g1.ID())
	assert.Equal(t, StateDispatched, g1.State())
	assert.False(t, g1.Cancelled())

	g2, fresh := m.Begin("firefox")
	require.True(t, fresh)
	assert.Equal(t, core.GenerationID(2), g2.ID())
	assert.True(t, g1.Cancelled(), "previous generation must be superseded")
	assert.Equal(t, StateSuperseded, g1.State())
	assert.Same(t, g2, m.Active())
}

func TestGenerationsSameQueryRejected(t *testing.T) {
	m := NewGenerations()

	g1, _ := m.Begin("fire")
	g2, fresh := m.Begin("fire")

	assert.False(t, fresh, "same-string resubmission is rejected, not cancelled")
	assert.Same(t, g1, g2)
	assert.False(t, g1.Cancelled())
	assert.Equal(t, core.GenerationID(1), m.ActiveID())
}

func TestGenerationsClear(t *testing.T) {
	m := NewGenerations()

	g, _ := m.Begin("fire")
	m.Clear()

	assert.True(t, g.Cancelled())
	assert.Nil(t, m.Active())
	assert.Equal(t, core.GenerationID(0), m.ActiveID())

	// After a clear the same query starts a fresh generation.
	g2, fresh := m.Begin("fire")
	assert.True(t, fresh)
	assert.Equal(t, core.GenerationID(2), g2.ID())
}

func TestGenerationCompleteThenSupersede(t *testing.T) {
	m := NewGenerations()

	g1, _ := m.Begin("fire")
	g1.complete()
	assert.Equal(t, StateCompleted, g1.State())

	select {
	case <-g1.Done():
	default:
		t.Fatal("Done must be closed after completion")
	}

	// A completed generation can still be superseded by a new query.
	_, fresh := m.Begin("firefox")
	require.True(t, fresh)
	assert.Equal(t, StateSuperseded, g1.State())
	assert.True(t, g1.Cancelled())
}

func TestGenerationDoneClosedOnce(t *testing.T) {
	g := newGeneration(1, "fire")
	g.supersede()
	g.supersede() // second supersede must not re-close
	g.complete()  // complete after supersede is a no-op

	assert.Equal(t, StateSuperseded, g.State())
	select {
	case <-g.Done():
	default:
		t.Fatal("Done must be closed")
	}
}
