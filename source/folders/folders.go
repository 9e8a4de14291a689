package folders

import (
	"context"
	"strings"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// Folder is one well-known system folder surfaced as a candidate.
type Folder struct {
	Name string
	Path string
	// Aliases are alternative names the folder also answers to, e.g.
	// localized names or the shell identifier.
	Aliases []string
}

// Adapter serves system-folder candidates from a fixed configured set.
type Adapter struct {
	folders []Folder
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter creates an adapter over the given folder set. Entries without a
// name or path are dropped.
func NewAdapter(folders []Folder) *Adapter {
	kept := make([]Folder, 0, len(folders))
	for _, f := range folders {
		if f.Name == "" || f.Path == "" {
			continue
		}
		kept = append(kept, f)
	}
	return &Adapter{folders: kept}
}

// Name identifies the adapter in logs and monitor callbacks.
func (a *Adapter) Name() string {
	return "folders"
}

// Search returns folders whose name or aliases contain the query. An empty
// query returns the whole set.
func (a *Adapter) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	candidates := make([]core.Candidate, 0, len(a.folders))
	for _, f := range a.folders {
		if q != "" && !f.matches(q) {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindSystemFolder,
			DisplayName: f.Name,
			Key:         core.NormalizeKey(f.Path),
			Path:        f.Path,
			IsFolder:    true,
		})
	}
	return candidates, nil
}

func (f *Folder) matches(q string) bool {
	if strings.Contains(strings.ToLower(f.Name), q) {
		return true
	}
	for _, alias := range f.Aliases {
		if strings.Contains(strings.ToLower(alias), q) {
			return true
		}
	}
	return false
}
