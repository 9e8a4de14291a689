package rank

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/palette/core"
)

// Context carries the cross-candidate state the score function reads: the
// evaluation time and the process-wide open history for recency lookups.
type Context struct {
	Now     time.Time
	History *core.OpenHistory
}

// Score computes the relevance of one candidate for a non-empty query.
// It is pure: identical inputs always produce identical scores. For an
// empty query candidates are ordered by usage and recency instead; see
// Ranker.Rank.
func Score(c core.Candidate, query string, sctx Context, w Weights) float64 {
	if query == "" {
		return 0
	}

	q := strings.ToLower(query)
	name := strings.ToLower(c.DisplayName)

	var score float64
	nameMatched := false

	switch {
	case name == q:
		score += w.ExactMatch
		if n := utf8.RuneCountInString(q); n >= 2 && n <= 4 {
			score += w.ShortQueryExactBoost
		}
		nameMatched = true
	case strings.HasPrefix(name, q):
		score += w.PrefixMatch
		nameMatched = true
	case strings.Contains(name, q):
		score += w.SubstringMatch
		nameMatched = true
	}

	// Phonetic fallback for applications with CJK names queried in ASCII.
	if !nameMatched && c.Kind == core.KindApplication {
		if s := pinyinScore(c, q, w); s > 0 {
			score += s
			nameMatched = true
		}
	}

	// Path match is worth much less and only counts if the name missed.
	if !nameMatched && c.Path != "" && strings.Contains(strings.ToLower(c.Path), q) {
		score += w.PathMatch
	}

	switch c.Kind {
	case core.KindApplication:
		score += w.ApplicationBonus
	case core.KindFileHistory:
		score += w.HistoryBonus
	case core.KindFilesystemHit:
		score += shallowPathBonus(c.Key, w)
	}

	score += usageBonus(c, w)
	score += recencyBonus(c, sctx, w)

	return score
}

func pinyinScore(c core.Candidate, q string, w Weights) float64 {
	if c.NamePinyinInitials != "" {
		initials := strings.ToLower(c.NamePinyinInitials)
		if initials == q || strings.HasPrefix(initials, q) {
			return w.PinyinInitialsMatch
		}
	}
	if c.NamePinyin != "" && strings.Contains(strings.ToLower(c.NamePinyin), q) {
		return w.PinyinMatch
	}
	return 0
}

// shallowPathBonus rewards filesystem hits closer to a root: fewer segments
// score higher, bottoming out at zero.
func shallowPathBonus(key string, w Weights) float64 {
	segments := strings.Count(key, "/")
	bonus := w.ShallowPathMax - float64(segments)*w.PathSegmentPenalty
	if bonus < 0 {
		return 0
	}
	return bonus
}

func usageBonus(c core.Candidate, w Weights) float64 {
	bonus := float64(c.UseCount) * w.UseCountUnit
	if bonus > w.UseCountCap {
		bonus = w.UseCountCap
	}
	if c.Kind == core.KindFileHistory {
		bonus *= w.HistoryUseCountFactor
	}
	return bonus
}

// recencyBonus decays linearly to zero over the recency window. The last-used
// time comes from the candidate itself or, failing that, the open history.
func recencyBonus(c core.Candidate, sctx Context, w Weights) float64 {
	lastUsed := c.LastUsed
	if lastUsed.IsZero() && sctx.History != nil {
		if at, ok := sctx.History.Get(c.Key); ok {
			lastUsed = time.Unix(at, 0)
		}
	}
	if lastUsed.IsZero() || w.RecencyWindow <= 0 {
		return 0
	}

	age := sctx.Now.Sub(lastUsed)
	if age < 0 {
		age = 0
	}
	if age >= w.RecencyWindow {
		return 0
	}
	return w.RecencyMax * (1 - float64(age)/float64(w.RecencyWindow))
}
