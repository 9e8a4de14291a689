package engine

import (
	"sync"

	"github.com/poiesic/palette/core"
)

// GenerationState is the lifecycle state of one generation.
type GenerationState int32

const (
	// StateDispatched means adapter work for this generation is in flight.
	StateDispatched GenerationState = iota + 1
	// StateSuperseded means a newer generation replaced this one; all of
	// its future writes are dropped.
	StateSuperseded
	// StateCompleted means the generation's results were fully delivered.
	// A later supersede is still valid if a new query arrives.
	StateCompleted
)

// Generation is one query's work unit. The manager exclusively owns
// generation identity; every other component holds the handle and must
// re-check Cancelled before committing any state mutation.
type Generation struct {
	id    core.GenerationID
	query string

	mu     sync.Mutex
	state  GenerationState
	finish chan struct{}
}

func newGeneration(id core.GenerationID, query string) *Generation {
	return &Generation{
		id:     id,
		query:  query,
		state:  StateDispatched,
		finish: make(chan struct{}),
	}
}

// ID returns the generation token.
func (g *Generation) ID() core.GenerationID { return g.id }

// Query returns the settled query this generation was dispatched for.
func (g *Generation) Query() string { return g.query }

// State returns the current lifecycle state.
func (g *Generation) State() GenerationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Cancelled reports whether the generation was superseded. Components treat
// a cancelled generation as a silent drop, never an error.
func (g *Generation) Cancelled() bool {
	return g.State() == StateSuperseded
}

// Done returns a channel closed when the generation first leaves the
// dispatched state, whether completed or superseded.
func (g *Generation) Done() <-chan struct{} { return g.finish }

func (g *Generation) supersede() {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.state
	g.state = StateSuperseded
	if prev == StateDispatched {
		close(g.finish)
	}
}

func (g *Generation) complete() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateDispatched {
		return
	}
	g.state = StateCompleted
	close(g.finish)
}

// Generations mints generation tokens and tracks the single active one.
type Generations struct {
	mu     sync.Mutex
	nextID uint64
	active *Generation
}

// NewGenerations creates an empty manager.
func NewGenerations() *Generations {
	return &Generations{}
}

// Begin creates a new active generation for query, superseding the previous
// one. Resubmitting the active generation's own query is rejected: the
// existing generation is returned with ok=false and nothing is cancelled.
func (m *Generations) Begin(query string) (gen *Generation, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && !m.active.Cancelled() && m.active.query == query {
		return m.active, false
	}
	if m.active != nil {
		m.active.supersede()
	}

	m.nextID++
	m.active = newGeneration(core.GenerationID(m.nextID), query)
	return m.active, true
}

// Clear supersedes the active generation, if any. Used when the query
// becomes empty.
func (m *Generations) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.supersede()
		m.active = nil
	}
}

// Active returns the active generation, or nil.
func (m *Generations) Active() *Generation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ActiveID returns the active generation's id, or zero when idle.
func (m *Generations) ActiveID() core.GenerationID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return 0
	}
	return m.active.id
}
