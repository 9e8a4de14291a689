package notes

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

const snippetLen = 120

// Adapter serves note candidates by case-insensitive substring match on the
// title or the markdown-stripped content. The notes are loaded from the store
// once on first search and cached; Refresh reloads after edits.
type Adapter struct {
	store  Store
	logger *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	entries []noteEntry
}

type noteEntry struct {
	note       core.Note
	titleLower string
	plain      string
	plainLower string
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter creates a search adapter over the given store.
func NewAdapter(store Store, logger *slog.Logger) (*Adapter, error) {
	if store == nil {
		return nil, source.ErrStoreRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger}, nil
}

// Name identifies the adapter in logs and monitor callbacks.
func (a *Adapter) Name() string {
	return "notes"
}

// Refresh reloads the cache from the store.
func (a *Adapter) Refresh(ctx context.Context) error {
	notes, err := a.store.All(ctx)
	if err != nil {
		return &source.AdapterError{Source: a.Name(), Err: err}
	}

	entries := make([]noteEntry, 0, len(notes))
	for _, n := range notes {
		plain := PlainText(n.Content)
		entries = append(entries, noteEntry{
			note:       n,
			titleLower: strings.ToLower(n.Title),
			plain:      plain,
			plainLower: strings.ToLower(plain),
		})
	}

	a.mu.Lock()
	a.entries = entries
	a.loaded = true
	a.mu.Unlock()
	return nil
}

// Search returns note candidates matching query on title or content. An
// empty query returns nothing.
func (a *Adapter) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	a.mu.RLock()
	loaded := a.loaded
	a.mu.RUnlock()
	if !loaded {
		if err := a.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	var candidates []core.Candidate
	for i := range a.entries {
		e := &a.entries[i]
		if !strings.Contains(e.titleLower, q) && !strings.Contains(e.plainLower, q) {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindNote,
			DisplayName: e.note.Title,
			Key:         core.SyntheticKey(core.KindNote, e.note.ID),
			Description: snippet(e.plain),
			LastUsed:    e.note.UpdatedAt,
		})
	}
	return candidates, nil
}

func snippet(plain string) string {
	if line, _, found := strings.Cut(plain, "\n"); found {
		plain = line
	}
	runes := []rune(plain)
	if len(runes) <= snippetLen {
		return plain
	}
	return string(runes[:snippetLen])
}
