package history

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// Adapter serves history candidates by case-insensitive substring match on
// the entry name or path.
type Adapter struct {
	store  Store
	logger *slog.Logger
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
	return "history"
}

// Search returns history candidates matching query. An empty query returns
// every entry in recency order.
func (a *Adapter) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	entries, err := a.store.All(ctx)
	if err != nil {
		return nil, &source.AdapterError{Source: a.Name(), Err: err}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	candidates := make([]core.Candidate, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if q != "" &&
			!strings.Contains(strings.ToLower(entry.Name), q) &&
			!strings.Contains(strings.ToLower(entry.Path), q) {
			continue
		}
		candidates = append(candidates, entry.Candidate())
	}
	return candidates, nil
}

// NewPathChecker returns a direct path-existence lookup for absolute-path
// queries. A missing path yields a nil entry, not an error; an existing path
// is enriched with usage data from store when recorded there.
func NewPathChecker(store Store) func(ctx context.Context, path string) (*core.HistoryEntry, error) {
	return func(ctx context.Context, path string) (*core.HistoryEntry, error) {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}

		entry := &core.HistoryEntry{
			Path:     path,
			Name:     filepath.Base(path),
			IsFolder: info.IsDir(),
		}
		if store != nil {
			if known, err := store.Get(ctx, path); err == nil {
				entry.UseCount = known.UseCount
				entry.LastUsed = known.LastUsed
			}
		}
		return entry, nil
	}
}
