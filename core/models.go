package core

//go:generate go run ../cmd/musgen

import (
	"time"
)

// GenerationID is a monotonically increasing token identifying one query's
// work unit. All generation-tagged state carries it by value; state whose id
// no longer matches the active generation is discarded silently.
type GenerationID uint64

// Kind identifies the variant of a Candidate.
type Kind int

const (
	// KindApplication is an installed application that can be launched.
	KindApplication Kind = iota + 1
	// KindFileHistory is a file or folder from the open-history store.
	KindFileHistory
	// KindNote is a note from the notes store.
	KindNote
	// KindPluginAction is an action contributed by an installed plugin.
	KindPluginAction
	// KindSystemFolder is a well-known system folder.
	KindSystemFolder
	// KindFilesystemHit is a raw match from the filesystem index.
	KindFilesystemHit
	// KindURL is a URL detected inside the query text.
	KindURL
	// KindJSONAction is an action offered when the query looks like JSON.
	KindJSONAction
	// KindHistoryShortcut opens the full open-history view.
	KindHistoryShortcut
	// KindSettingsAction opens the launcher settings.
	KindSettingsAction
	// KindAIAnswer is a natural-language answer to the query.
	KindAIAnswer
)

var kindNames = map[Kind]string{
	KindApplication:     "application",
	KindFileHistory:     "file-history",
	KindNote:            "note",
	KindPluginAction:    "plugin-action",
	KindSystemFolder:    "system-folder",
	KindFilesystemHit:   "filesystem-hit",
	KindURL:             "url",
	KindJSONAction:      "json-action",
	KindHistoryShortcut: "history-shortcut",
	KindSettingsAction:  "settings-action",
	KindAIAnswer:        "ai-answer",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Special reports whether the kind belongs to the fixed-priority band that
// precedes every other candidate, plugin actions included.
func (k Kind) Special() bool {
	return k == KindAIAnswer || k == KindHistoryShortcut || k == KindSettingsAction
}

// PathKind reports whether candidates of this kind are identified by a
// normalized filesystem path and participate in cross-source deduplication.
func (k Kind) PathKind() bool {
	switch k {
	case KindApplication, KindFileHistory, KindSystemFolder, KindFilesystemHit:
		return true
	default:
		return false
	}
}

// Candidate is one rankable item surfaced to the user.
// Key is the deduplication identity: a normalized filesystem path for path
// kinds, a synthetic URI otherwise. Kind-specific payload fields are zero for
// kinds they do not apply to.
type Candidate struct {
	Kind        Kind
	DisplayName string
	Key         string
	Path        string
	Description string
	IsFolder    bool
	UseCount    uint64
	LastUsed    time.Time

	// Phonetic transliterations of DisplayName, precomputed by the
	// application registry for CJK names. Empty for non-CJK names.
	NamePinyin         string
	NamePinyinInitials string
}

// Batch is a partial, in-progress chunk of results from the streaming
// filesystem-index adapter. TotalCount is the index's raw match count as
// known at emission time; ReceivedCount is cumulative across the generation.
type Batch struct {
	Generation    GenerationID
	Items         []Candidate
	TotalCount    uint64
	ReceivedCount uint64
}

// FinalResult is the streaming adapter's terminal, authoritative response for
// one generation. It replaces all previously accumulated batches.
type FinalResult struct {
	Generation GenerationID
	Items      []Candidate
	TotalCount uint64
}

// HistoryEntry is a file or folder recorded in the open-history store.
type HistoryEntry struct {
	Path     string
	Name     string
	IsFolder bool
	UseCount uint64
	LastUsed time.Time
}

// Candidate converts the entry to a history-sourced candidate.
func (e *HistoryEntry) Candidate() Candidate {
	return Candidate{
		Kind:        KindFileHistory,
		DisplayName: e.Name,
		Key:         NormalizeKey(e.Path),
		Path:        e.Path,
		IsFolder:    e.IsFolder,
		UseCount:    e.UseCount,
		LastUsed:    e.LastUsed,
	}
}

// Note is a note loaded from the notes store.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Application describes an installed application known to the registry.
type Application struct {
	Name               string
	Path               string
	Icon               string
	NamePinyin         string
	NamePinyinInitials string
}

// Candidate converts the application to a launchable candidate.
func (a *Application) Candidate() Candidate {
	return Candidate{
		Kind:               KindApplication,
		DisplayName:        a.Name,
		Key:                NormalizeKey(a.Path),
		Path:               a.Path,
		NamePinyin:         a.NamePinyin,
		NamePinyinInitials: a.NamePinyinInitials,
	}
}
