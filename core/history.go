package core

import "sync"

// OpenHistory is the process-wide map of normalized key to last-open epoch
// seconds. It is loaded once at startup from the history store and updated
// optimistically in memory on every successful launch; the persistent write
// behind it is fire-and-forget. Writes are overwrite-only, last writer wins.
type OpenHistory struct {
	mu      sync.RWMutex
	entries map[string]int64
}

// NewOpenHistory creates an OpenHistory seeded from the given map.
// The map is copied; a nil seed yields an empty history.
func NewOpenHistory(seed map[string]int64) *OpenHistory {
	entries := make(map[string]int64, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &OpenHistory{entries: entries}
}

// Get returns the last-open epoch seconds for key, if recorded.
func (h *OpenHistory) Get(key string) (int64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	at, ok := h.entries[key]
	return at, ok
}

// Set records the last-open epoch seconds for key.
func (h *OpenHistory) Set(key string, epochSeconds int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[key] = epochSeconds
}

// Len returns the number of recorded keys.
func (h *OpenHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Snapshot returns a copy of the current entries.
func (h *OpenHistory) Snapshot() map[string]int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]int64, len(h.entries))
	for k, v := range h.entries {
		out[k] = v
	}
	return out
}
