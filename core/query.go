package core

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

// Query is one settled user query, tagged with the generation it dispatched.
type Query struct {
	Raw        string
	Trimmed    string
	Generation GenerationID
}

// NewQuery builds a Query from raw input text.
func NewQuery(raw string, generation GenerationID) Query {
	return Query{
		Raw:        raw,
		Trimmed:    strings.TrimSpace(raw),
		Generation: generation,
	}
}

// IsEmpty reports whether the trimmed query is empty.
func (q Query) IsEmpty() bool {
	return q.Trimmed == ""
}

// IsAbsolutePathLike reports whether the trimmed query looks like an absolute
// filesystem path (Unix rooted path or Windows drive path). Such queries are
// resolved with a direct path lookup instead of the filesystem index.
func (q Query) IsAbsolutePathLike() bool {
	return IsAbsolutePathLike(q.Trimmed)
}

// IsJSONLike reports whether the trimmed query parses as a JSON object or array.
func (q Query) IsJSONLike() bool {
	return IsJSONLike(q.Trimmed)
}

// DetectedURLs returns the URLs found inside the trimmed query, in order.
func (q Query) DetectedURLs() []string {
	return DetectURLs(q.Trimmed)
}

// IsAbsolutePathLike reports whether s looks like an absolute filesystem path.
func IsAbsolutePathLike(s string) bool {
	if len(s) >= 3 && unicode.IsLetter(rune(s[0])) && s[1] == ':' && (s[2] == '\\' || s[2] == '/') {
		return true
	}
	return len(s) >= 2 && s[0] == '/' && !strings.ContainsAny(s, " \t")
}

// IsJSONLike reports whether s parses as a JSON object or array.
func IsJSONLike(s string) bool {
	if len(s) < 2 {
		return false
	}
	first := s[0]
	if first != '{' && first != '[' {
		return false
	}
	return json.Valid([]byte(s))
}

var urlPattern = regexp.MustCompile(`\bhttps?://[^\s<>"']+`)

// DetectURLs returns all http(s) URLs found in s, in order of appearance.
func DetectURLs(s string) []string {
	return urlPattern.FindAllString(s, -1)
}
