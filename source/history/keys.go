package history

// Key prefixes for the history store
const (
	entryPrefix = "hisent"
)

// makeEntryKey generates a key for a history entry by its normalized path key.
func makeEntryKey(normalized string) []byte {
	return []byte(entryPrefix + ":" + normalized)
}
