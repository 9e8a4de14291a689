package apps

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// Registry is the in-memory application catalog. A scan of the installed
// applications loads it once; queries filter it synchronously. Pinyin
// transliterations are carried on each application at load time so matching
// never transliterates per query.
type Registry struct {
	logger *slog.Logger

	mu   sync.RWMutex
	apps []core.Application
}

var _ source.Adapter = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates a registry seeded with the given applications.
func NewRegistry(apps []core.Application, opts ...Option) (*Registry, error) {
	r := &Registry{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.Replace(apps)
	return r, nil
}

// Replace swaps the catalog for a fresh scan result. Entries without a path
// or name are dropped.
func (r *Registry) Replace(apps []core.Application) {
	kept := make([]core.Application, 0, len(apps))
	for _, app := range apps {
		if app.Name == "" || app.Path == "" {
			r.logger.Debug("dropping incomplete application entry",
				"name", app.Name, "path", app.Path)
			continue
		}
		kept = append(kept, app)
	}

	r.mu.Lock()
	r.apps = kept
	r.mu.Unlock()
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

// Name identifies the adapter in logs and monitor callbacks.
func (r *Registry) Name() string {
	return "apps"
}

// Search returns applications whose name, pinyin transliteration, or pinyin
// initials contain the query, case-insensitively. An empty query returns the
// whole catalog.
func (r *Registry) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := make([]core.Candidate, 0, len(r.apps))
	for i := range r.apps {
		app := &r.apps[i]
		if q != "" && !matches(app, q) {
			continue
		}
		candidates = append(candidates, app.Candidate())
	}
	return candidates, nil
}

func matches(app *core.Application, q string) bool {
	if strings.Contains(strings.ToLower(app.Name), q) {
		return true
	}
	if app.NamePinyin != "" && strings.Contains(strings.ToLower(app.NamePinyin), q) {
		return true
	}
	if app.NamePinyinInitials != "" && strings.Contains(strings.ToLower(app.NamePinyinInitials), q) {
		return true
	}
	return false
}
