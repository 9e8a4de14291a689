package rank

import "github.com/poiesic/palette/core"

// dedupPreference orders path-kind sources by how much we trust them for a
// colliding key. History wins because it carries usage metadata no other
// source has; a blind index hit loses to everything.
var dedupPreference = map[core.Kind]int{
	core.KindFileHistory:   0,
	core.KindApplication:   1,
	core.KindSystemFolder:  2,
	core.KindFilesystemHit: 3,
}

// Dedup removes cross-source key collisions among the path kinds, keeping
// the most trusted source per normalized key. Non-path kinds live in
// separate key namespaces by construction and pass through untouched.
// Two passes over the input, set membership per key: O(n).
func Dedup(candidates []core.Candidate) []core.Candidate {
	winners := make(map[string]int, len(candidates))
	for _, c := range candidates {
		if !c.Kind.PathKind() {
			continue
		}
		pref, ok := winners[c.Key]
		if !ok || dedupPreference[c.Kind] < pref {
			winners[c.Key] = dedupPreference[c.Kind]
		}
	}

	out := make([]core.Candidate, 0, len(candidates))
	seen := make(map[string]bool, len(winners))
	for _, c := range candidates {
		if !c.Kind.PathKind() {
			out = append(out, c)
			continue
		}
		if dedupPreference[c.Kind] != winners[c.Key] || seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		out = append(out, c)
	}
	return out
}
