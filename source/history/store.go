package history

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/palette/core"
)

// Store is the persistent file-open-history store. Every successful launch of
// a file or folder candidate is recorded here; the in-memory open-history map
// is seeded from it once at startup. Operations on a closed store return
// ErrStoreClosed.
type Store interface {
	// RecordOpen upserts the entry for path: the use count is incremented
	// and the last-used timestamp set to now. An empty name defaults to the
	// path's base name.
	RecordOpen(ctx context.Context, path, name string, isFolder bool) error

	// Get returns the entry for path, or ErrNotFound.
	Get(ctx context.Context, path string) (*core.HistoryEntry, error)

	// All returns every recorded entry, most recently used first.
	All(ctx context.Context) ([]core.HistoryEntry, error)

	// OpenHistory builds the in-memory last-open map from the store.
	OpenHistory(ctx context.Context) (*core.OpenHistory, error)

	// Close closes the underlying database.
	Close() error
}

type store struct {
	backend *Backend
	logger  *slog.Logger
	now     func() time.Time
}

var _ Store = (*store)(nil)

// Option configures a Store.
type Option func(*store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore opens a history store at the given directory.
func NewStore(path string, opts ...Option) (Store, error) {
	return newStore(path, false, opts...)
}

// NewMemoryStore opens an in-memory history store for tests and ephemeral use.
func NewMemoryStore(opts ...Option) (Store, error) {
	return newStore("", true, opts...)
}

func newStore(path string, inMemory bool, opts ...Option) (Store, error) {
	s := &store{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	// Options first, so the configured logger reaches the backend and
	// badger's own messages.
	backend, err := OpenBackend(path, inMemory, s.logger)
	if err != nil {
		return nil, err
	}
	s.backend = backend
	return s, nil
}

func (s *store) RecordOpen(ctx context.Context, path, name string, isFolder bool) error {
	if s.backend.IsClosed() {
		return ErrStoreClosed
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ErrEmptyPath
	}
	if name == "" {
		name = filepath.Base(path)
	}

	key := makeEntryKey(core.NormalizeKey(path))
	return s.backend.WithTx(func(tx *badger.Txn) error {
		entry := &core.HistoryEntry{Path: path, Name: name, IsFolder: isFolder}

		item, err := tx.Get(key)
		switch {
		case err == nil:
			err = item.Value(func(val []byte) error {
				prev, uerr := UnmarshalEntry(val)
				if uerr != nil {
					return uerr
				}
				entry.UseCount = prev.UseCount
				return nil
			})
			if err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			// First open of this path.
		default:
			return err
		}

		entry.UseCount++
		entry.LastUsed = s.now().UTC()

		if err := tx.Set(key, MarshalEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (s *store) Get(ctx context.Context, path string) (*core.HistoryEntry, error) {
	if s.backend.IsClosed() {
		return nil, ErrStoreClosed
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyPath
	}

	var entry *core.HistoryEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(core.NormalizeKey(path)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = UnmarshalEntry(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *store) All(ctx context.Context) ([]core.HistoryEntry, error) {
	if s.backend.IsClosed() {
		return nil, ErrStoreClosed
	}
	var entries []core.HistoryEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, uerr := UnmarshalEntry(val)
				if uerr != nil {
					return uerr
				}
				entries = append(entries, *entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortByLastUsed(entries)
	return entries, nil
}

func (s *store) OpenHistory(ctx context.Context) (*core.OpenHistory, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seed := make(map[string]int64, len(entries))
	for _, entry := range entries {
		seed[core.NormalizeKey(entry.Path)] = entry.LastUsed.Unix()
	}
	return core.NewOpenHistory(seed), nil
}

func (s *store) Close() error {
	return s.backend.Close()
}

// sortByLastUsed orders entries most recently used first, use count as the
// tie-break.
func sortByLastUsed(entries []core.HistoryEntry) {
	slices.SortFunc(entries, func(a, b core.HistoryEntry) int {
		if !a.LastUsed.Equal(b.LastUsed) {
			if a.LastUsed.After(b.LastUsed) {
				return -1
			}
			return 1
		}
		if a.UseCount != b.UseCount {
			if a.UseCount > b.UseCount {
				return -1
			}
			return 1
		}
		return 0
	})
}
