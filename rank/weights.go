package rank

import "time"

// Weights holds the scoring constants. The absolute numbers are hand-tuned;
// what matters is the ordering they induce: exact beats prefix beats
// substring, history beats a blind index hit, and usage/recency only ever
// nudge within those bands.
type Weights struct {
	// ExactMatch scores a candidate whose display name equals the query.
	ExactMatch float64
	// ShortQueryExactBoost is added on top of ExactMatch for 2-4 rune
	// queries, where substring noise is worst.
	ShortQueryExactBoost float64
	// PrefixMatch scores a display name starting with the query.
	PrefixMatch float64
	// SubstringMatch scores a display name containing the query.
	SubstringMatch float64
	// PinyinInitialsMatch scores an application whose phonetic initials
	// match the query.
	PinyinInitialsMatch float64
	// PinyinMatch scores an application whose full phonetic name contains
	// the query.
	PinyinMatch float64
	// PathMatch scores a path containing the query, and only applies when
	// the name itself did not match.
	PathMatch float64
	// ApplicationBonus keeps launchable applications visible.
	ApplicationBonus float64
	// ShallowPathMax is the largest shallow-path bonus for a filesystem
	// hit; each path segment subtracts PathSegmentPenalty from it.
	ShallowPathMax     float64
	PathSegmentPenalty float64
	// HistoryBonus is the flat bonus for history entries; history is
	// trusted more than a blind index hit.
	HistoryBonus float64
	// UseCountUnit is the per-use bonus, capped at UseCountCap before the
	// history factor is applied.
	UseCountUnit float64
	UseCountCap  float64
	// HistoryUseCountFactor weights usage higher for history entries.
	HistoryUseCountFactor float64
	// RecencyMax decays linearly to zero over RecencyWindow.
	RecencyMax    float64
	RecencyWindow time.Duration
	// TieBand is the score gap inside which a history entry outranks a
	// filesystem hit regardless of score, to stop rank flapping caused by
	// the index's large baseline bonuses.
	TieBand float64
	// SortHead bounds the number of candidates given a full stable sort;
	// the remainder is appended unsorted. Specials and plugin actions are
	// never subject to the cap.
	SortHead int
}

// DefaultWeights returns the tuned default scoring constants.
func DefaultWeights() Weights {
	return Weights{
		ExactMatch:            1000,
		ShortQueryExactBoost:  400,
		PrefixMatch:           600,
		SubstringMatch:        400,
		PinyinInitialsMatch:   350,
		PinyinMatch:           300,
		PathMatch:             80,
		ApplicationBonus:      150,
		ShallowPathMax:        120,
		PathSegmentPenalty:    15,
		HistoryBonus:          300,
		UseCountUnit:          10,
		UseCountCap:           100,
		HistoryUseCountFactor: 2,
		RecencyMax:            200,
		RecencyWindow:         30 * 24 * time.Hour,
		TieBand:               200,
		SortHead:              1000,
	}
}
