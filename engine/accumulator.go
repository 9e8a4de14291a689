package engine

import (
	"log/slog"
	"sync"

	"github.com/poiesic/palette/core"
)

// Accumulator merges the streaming adapter's out-of-band batches into a
// running buffer for the active generation and reconciles the buffer with
// the adapter's final authoritative response. It is the sole consumer of
// batch events; anything tagged with a non-active generation is dropped
// silently.
type Accumulator struct {
	logger *slog.Logger

	mu         sync.Mutex
	generation core.GenerationID
	items      []core.Candidate
	total      uint64
	finalized  bool
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator(logger *slog.Logger) *Accumulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accumulator{logger: logger}
}

func (a *Accumulator) resetLocked(generation core.GenerationID) {
	a.generation = generation
	a.items = nil
	a.total = 0
	a.finalized = false
}

// Reset discards all buffered state and re-tags the accumulator.
func (a *Accumulator) Reset(generation core.GenerationID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked(generation)
}

// Apply appends one batch in arrival order. The first batch for a new
// generation discards any buffer from a prior one, so nothing ever leaks
// across generations. A batch that would push the buffer past the declared
// total is truncated and logged, never errored. Returns whether the batch
// was applied.
func (a *Accumulator) Apply(b core.Batch, active core.GenerationID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if b.Generation != active {
		return false
	}
	if b.Generation != a.generation {
		a.resetLocked(b.Generation)
	}
	if a.finalized {
		// The final response is already authoritative.
		return false
	}

	if err := b.Validate(); err != nil {
		a.logger.Warn("malformed batch",
			"generation", b.Generation,
			"error", err)
	}

	if b.TotalCount > 0 {
		a.total = b.TotalCount
	}
	a.items = append(a.items, b.Items...)

	if a.total > 0 && uint64(len(a.items)) > a.total {
		a.logger.Warn("batch overflow, truncating buffer",
			"generation", b.Generation,
			"buffered", len(a.items),
			"total", a.total)
		a.items = a.items[:a.total]
	}
	return true
}

// Finalize replaces the buffer with the adapter's final authoritative result
// set, deduplicated by key in a single pass, and freezes the total. A
// disagreement between the accumulated batch count and the final count is
// logged, not errored: batch totals reflect the index's raw match count
// while the final response reflects the post-filtered set. Returns whether
// the result was accepted.
func (a *Accumulator) Finalize(fr core.FinalResult, active core.GenerationID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if fr.Generation != active {
		return false
	}
	if fr.Generation != a.generation {
		a.resetLocked(fr.Generation)
	}

	batched := len(a.items)
	deduped := dedupByKey(fr.Items)

	if batched != 0 && batched != len(deduped) {
		a.logger.Info("accumulated batches disagree with final result",
			"generation", fr.Generation,
			"batched", batched,
			"final", len(deduped))
	}

	a.items = deduped
	a.total = fr.TotalCount
	a.finalized = true
	return true
}

// Snapshot returns a copy of the buffer and the latest known total for the
// active generation, or nil when the buffer belongs to another generation.
func (a *Accumulator) Snapshot(active core.GenerationID) (items []core.Candidate, total uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.generation != active {
		return nil, 0
	}
	items = make([]core.Candidate, len(a.items))
	copy(items, a.items)
	return items, a.total
}

// Finalized reports whether the active generation's buffer holds the
// adapter's final result.
func (a *Accumulator) Finalized(active core.GenerationID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation == active && a.finalized
}

// dedupByKey removes duplicate keys in one pass, keeping first occurrence.
func dedupByKey(items []core.Candidate) []core.Candidate {
	seen := make(map[string]bool, len(items))
	out := make([]core.Candidate, 0, len(items))
	for _, c := range items {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		out = append(out, c)
	}
	return out
}
