package plugins

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// Action is one command contributed by an installed plugin.
type Action struct {
	Plugin      string
	Name        string
	Description string
	// Keywords trigger the action in addition to its name.
	Keywords []string
}

// Registry is the installed-plugin action catalog. Plugins register their
// actions at startup; queries filter the catalog synchronously. Ranking keeps
// plugin actions in their own band above ordinary results.
type Registry struct {
	mu      sync.RWMutex
	actions []Action
}

var _ source.Adapter = (*Registry)(nil)

// NewRegistry creates a registry seeded with the given actions.
func NewRegistry(actions []Action) *Registry {
	r := &Registry{}
	r.Replace(actions)
	return r
}

// Replace swaps the catalog. Actions without a plugin or name are dropped.
func (r *Registry) Replace(actions []Action) {
	kept := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.Plugin == "" || a.Name == "" {
			continue
		}
		kept = append(kept, a)
	}

	r.mu.Lock()
	r.actions = kept
	r.mu.Unlock()
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Name identifies the adapter in logs and monitor callbacks.
func (r *Registry) Name() string {
	return "plugins"
}

// Search returns plugin actions whose name, plugin, or keywords contain the
// query. An empty query returns nothing; plugin actions are never surfaced
// unprompted.
func (r *Registry) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []core.Candidate
	for _, a := range r.actions {
		if !a.matches(q) {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindPluginAction,
			DisplayName: a.Name,
			Key:         core.SyntheticKey(core.KindPluginAction, a.Plugin+"/"+a.Name),
			Description: a.Description,
		})
	}
	return candidates, nil
}

func (a *Action) matches(q string) bool {
	if strings.Contains(strings.ToLower(a.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Plugin), q) {
		return true
	}
	for _, kw := range a.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
