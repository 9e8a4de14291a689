package engine

import "github.com/poiesic/palette/core"

// QueryMonitor provides hooks to observe one query's lifecycle.
// Implement this interface to track dispatches, per-source completions,
// streaming progress, and delivery during a search.
type QueryMonitor interface {
	Dispatched(generation core.GenerationID, query string)
	SourceCompleted(generation core.GenerationID, src string, count int)
	SourceFailed(generation core.GenerationID, src string, err error)
	StaleDropped(generation core.GenerationID, src string)
	BatchApplied(generation core.GenerationID, received int, total uint64)
	StreamReconciled(generation core.GenerationID, batched, final int)
	Ranked(generation core.GenerationID, count int)
	Completed(generation core.GenerationID)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Dispatched(_ core.GenerationID, _ string)           {}
func (n *noopMonitor) SourceCompleted(_ core.GenerationID, _ string, _ int) {}
func (n *noopMonitor) SourceFailed(_ core.GenerationID, _ string, _ error) {}
func (n *noopMonitor) StaleDropped(_ core.GenerationID, _ string)         {}
func (n *noopMonitor) BatchApplied(_ core.GenerationID, _ int, _ uint64)  {}
func (n *noopMonitor) StreamReconciled(_ core.GenerationID, _, _ int)     {}
func (n *noopMonitor) Ranked(_ core.GenerationID, _ int)                  {}
func (n *noopMonitor) Completed(_ core.GenerationID)                      {}
