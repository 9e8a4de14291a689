package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// NormalizeKey canonicalizes a filesystem path for use as a deduplication
// key: path separators become forward slashes, case is folded, and a trailing
// separator is dropped. Candidates from different sources that refer to the
// same file produce the same key.
func NormalizeKey(path string) string {
	key := strings.ReplaceAll(path, "\\", "/")
	key = strings.ToLower(key)
	if len(key) > 1 {
		key = strings.TrimSuffix(key, "/")
	}
	return key
}

// SyntheticKey builds a content-addressed URI for candidates that are not
// identified by a filesystem path. Identical (kind, name) pairs produce
// identical keys.
func SyntheticKey(kind Kind, name string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(name))
	return "palette://" + kind.String() + "/" + hex.EncodeToString(h.Sum(nil))
}
