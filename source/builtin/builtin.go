package builtin

import (
	"context"
	"strings"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// Adapter surfaces the launcher's built-in candidates derived purely from
// the query text: detected URLs, a JSON formatting action, and the settings
// and history shortcuts on their trigger keywords. Everything it emits is
// either a special kind or a URL, so the ranker pins it ahead of ordinary
// results.
type Adapter struct {
	settingsTriggers []string
	historyTriggers  []string
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter creates the built-in adapter with the default trigger keywords.
func NewAdapter() *Adapter {
	return &Adapter{
		settingsTriggers: []string{"settings", "preferences", "options"},
		historyTriggers:  []string{"history", "recent"},
	}
}

// Name identifies the adapter in logs and monitor callbacks.
func (a *Adapter) Name() string {
	return "builtin"
}

// Search classifies the query and returns the matching built-in candidates.
func (a *Adapter) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	q := core.NewQuery(query, 0)
	if q.IsEmpty() {
		return nil, nil
	}

	var candidates []core.Candidate

	for _, url := range q.DetectedURLs() {
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindURL,
			DisplayName: url,
			Key:         core.SyntheticKey(core.KindURL, url),
			Description: "Open in browser",
		})
	}

	if q.IsJSONLike() {
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindJSONAction,
			DisplayName: "Format JSON",
			Key:         core.SyntheticKey(core.KindJSONAction, q.Trimmed),
			Description: "Pretty-print the query as JSON",
		})
	}

	lowered := strings.ToLower(q.Trimmed)
	if triggered(a.settingsTriggers, lowered) {
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindSettingsAction,
			DisplayName: "Open Settings",
			Key:         core.SyntheticKey(core.KindSettingsAction, "settings"),
		})
	}
	if triggered(a.historyTriggers, lowered) {
		candidates = append(candidates, core.Candidate{
			Kind:        core.KindHistoryShortcut,
			DisplayName: "Open History",
			Key:         core.SyntheticKey(core.KindHistoryShortcut, "history"),
		})
	}

	return candidates, nil
}

// triggered reports whether the lowered query is a prefix of any trigger
// keyword, at least two characters long. Typing "set" offers settings;
// "s" alone does not.
func triggered(triggers []string, lowered string) bool {
	if len(lowered) < 2 {
		return false
	}
	for _, t := range triggers {
		if strings.HasPrefix(t, lowered) {
			return true
		}
	}
	return false
}
