package fsindex

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

const (
	defaultBatchSize   = 500
	defaultWalkerLimit = 4
)

// entry is one indexed path.
type entry struct {
	path      string
	nameLower string
	isDir     bool
}

// Index is an in-process filesystem index over a fixed set of roots. Build
// walks the roots concurrently and snapshots every path; Search streams
// matches back in batches the way an external index service would. Until
// Build has run the index reports itself stopped and refuses queries.
type Index struct {
	roots     []string
	batchSize int
	logger    *slog.Logger

	mu      sync.RWMutex
	state   source.Availability
	entries []entry
}

var _ source.StreamingAdapter = (*Index)(nil)

// Option configures an Index.
type Option func(*Index) error

// WithBatchSize sets how many matches each streamed batch carries.
// Default is 500.
func WithBatchSize(n int) Option {
	return func(idx *Index) error {
		if n < 1 {
			return ErrInvalidBatchSize
		}
		idx.batchSize = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// NewIndex creates an index over the given roots. The index is stopped until
// Build succeeds; with no roots it reports itself unavailable.
func NewIndex(roots []string, opts ...Option) (*Index, error) {
	idx := &Index{
		roots:     roots,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
		state:     source.AvailabilityStopped,
	}
	if len(roots) == 0 {
		idx.state = source.AvailabilityUnavailable
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Name identifies the adapter in logs and monitor callbacks.
func (idx *Index) Name() string {
	return "fsindex"
}

// Availability reports the current index state.
func (idx *Index) Availability() source.Availability {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state
}

// Build walks every root concurrently and replaces the index contents.
// An unreadable directory is skipped, not fatal; a root that cannot be
// walked at all fails the build.
func (idx *Index) Build(ctx context.Context) error {
	if len(idx.roots) == 0 {
		return source.ErrAdapterUnavailable
	}

	perRoot := make([][]entry, len(idx.roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultWalkerLimit)

	for i, root := range idx.roots {
		g.Go(func() error {
			var collected []entry
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					idx.logger.Debug("skipping unreadable path", "path", path, "err", err)
					if d != nil && d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if gctx.Err() != nil {
					return gctx.Err()
				}
				collected = append(collected, entry{
					path:      path,
					nameLower: strings.ToLower(d.Name()),
					isDir:     d.IsDir(),
				})
				return nil
			})
			if err != nil {
				return err
			}
			perRoot[i] = collected
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var merged []entry
	for _, part := range perRoot {
		merged = append(merged, part...)
	}

	idx.mu.Lock()
	idx.entries = merged
	idx.state = source.AvailabilityRunning
	idx.mu.Unlock()

	idx.logger.Info("filesystem index built",
		"roots", len(idx.roots), "entries", len(merged))
	return nil
}

// Stop marks the index stopped without discarding its contents.
func (idx *Index) Stop() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.state == source.AvailabilityRunning {
		idx.state = source.AvailabilityStopped
	}
}

// match returns the indexed entries whose file name contains q.
func (idx *Index) match(q string) []entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []entry
	for _, e := range idx.entries {
		if strings.Contains(e.nameLower, q) {
			out = append(out, e)
		}
	}
	return out
}

func (e *entry) candidate() core.Candidate {
	return core.Candidate{
		Kind:        core.KindFilesystemHit,
		DisplayName: filepath.Base(e.path),
		Key:         core.NormalizeKey(e.path),
		Path:        e.path,
		IsFolder:    e.isDir,
	}
}
