package rank

import (
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/palette/core"
)

// Ranker turns a raw candidate set into a deduplicated, stably ordered list.
type Ranker struct {
	weights Weights
	logger  *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithWeights overrides the default scoring constants.
func WithWeights(w Weights) Option {
	return func(r *Ranker) error {
		r.weights = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker with the default weights.
func NewRanker(opts ...Option) (*Ranker, error) {
	r := &Ranker{
		weights: DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Weights returns the ranker's scoring constants.
func (r *Ranker) Weights() Weights {
	return r.weights
}

// fixed ordering inside the special band
var specialOrder = map[core.Kind]int{
	core.KindAIAnswer:        0,
	core.KindHistoryShortcut: 1,
	core.KindSettingsAction:  2,
}

type scored struct {
	candidate core.Candidate
	score     float64
}

// Rank deduplicates, scores, and orders candidates for the given query.
// Specials come first in fixed order, then plugin actions, then everything
// else by score. An empty query orders purely by usage and recency. For very
// large sets only a fixed-size head is fully sorted; the tail is appended in
// arrival order. Specials and plugin actions are never subject to the cap.
func (r *Ranker) Rank(candidates []core.Candidate, query string, sctx Context) []core.Candidate {
	deduped := Dedup(candidates)

	var specials, plugins []core.Candidate
	rest := make([]core.Candidate, 0, len(deduped))
	for _, c := range deduped {
		switch {
		case c.Kind.Special():
			specials = append(specials, c)
		case c.Kind == core.KindPluginAction:
			plugins = append(plugins, c)
		default:
			rest = append(rest, c)
		}
	}

	sort.SliceStable(specials, func(i, j int) bool {
		return specialOrder[specials[i].Kind] < specialOrder[specials[j].Kind]
	})
	r.sortPlugins(plugins, query, sctx)
	if query == "" {
		sortByUsage(rest)
	} else {
		r.sortScored(rest, query, sctx)
	}

	out := make([]core.Candidate, 0, len(deduped))
	out = append(out, specials...)
	out = append(out, plugins...)
	out = append(out, rest...)
	return out
}

func (r *Ranker) sortPlugins(plugins []core.Candidate, query string, sctx Context) {
	if len(plugins) < 2 {
		return
	}
	items := r.scoreAll(plugins, query, sctx)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	for i, it := range items {
		plugins[i] = it.candidate
	}
}

func (r *Ranker) scoreAll(candidates []core.Candidate, query string, sctx Context) []scored {
	items := make([]scored, len(candidates))
	for i, c := range candidates {
		items[i] = scored{candidate: c, score: Score(c, query, sctx, r.weights)}
	}
	return items
}

func (r *Ranker) sortScored(candidates []core.Candidate, query string, sctx Context) {
	items := r.scoreAll(candidates, query, sctx)

	head := items
	if r.weights.SortHead > 0 && len(items) > r.weights.SortHead {
		head = items[:r.weights.SortHead]
		r.logger.Debug("sorting head only",
			"candidates", len(items), "head", r.weights.SortHead)
	}

	w := r.weights
	sort.SliceStable(head, func(i, j int) bool {
		return lessScored(head[i], head[j], w)
	})

	for i, it := range items {
		candidates[i] = it.candidate
	}
}

// lessScored implements the tie-break chain: the history-over-index band
// first, then score, then applications, then history over raw hits, then
// recency. Elements not covered by a rule keep their arrival order.
func lessScored(a, b scored, w Weights) bool {
	ak, bk := a.candidate.Kind, b.candidate.Kind

	// Inside the band a history entry beats a filesystem hit outright.
	if math.Abs(a.score-b.score) <= w.TieBand {
		if ak == core.KindFileHistory && bk == core.KindFilesystemHit {
			return true
		}
		if ak == core.KindFilesystemHit && bk == core.KindFileHistory {
			return false
		}
	}

	if a.score != b.score {
		return a.score > b.score
	}

	if (ak == core.KindApplication) != (bk == core.KindApplication) {
		return ak == core.KindApplication
	}
	if ak == core.KindFileHistory && bk == core.KindFilesystemHit {
		return true
	}
	if ak == core.KindFilesystemHit && bk == core.KindFileHistory {
		return false
	}
	return a.candidate.LastUsed.After(b.candidate.LastUsed)
}

// sortByUsage orders the default empty-query view: most used first, then
// most recently used. No text-matching terms contribute.
func sortByUsage(candidates []core.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].UseCount != candidates[j].UseCount {
			return candidates[i].UseCount > candidates[j].UseCount
		}
		return candidates[i].LastUsed.After(candidates[j].LastUsed)
	})
}
