package palette

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source/folders"
	"github.com/poiesic/palette/source/notes"
	"github.com/poiesic/palette/source/plugins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSink struct {
	mu    sync.Mutex
	shown []core.Candidate
}

func (s *testSink) Show(items []core.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = items
}

func (s *testSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = nil
}

func newTestLauncher(t *testing.T, opts ...LauncherOption) *Launcher {
	t.Helper()
	opts = append(opts, WithMemoryStore(),
		WithApplications([]core.Application{
			{Name: "Firefox", Path: `C:\Apps\firefox.exe`},
			{Name: "Files", Path: "/usr/bin/files"},
		}),
		WithFolders([]folders.Folder{
			{Name: "Downloads", Path: "/home/u/Downloads"},
		}),
		WithPluginActions([]plugins.Action{
			{Plugin: "clipboard", Name: "Clipboard History"},
		}),
	)
	l, err := NewLauncher(t.TempDir(), &testSink{}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLauncherSearchAcrossSources(t *testing.T) {
	l := newTestLauncher(t)

	got, err := l.Search(context.Background(), "firefox")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Firefox", got[0].DisplayName)
}

func TestLauncherLaunchFeedsHistory(t *testing.T) {
	l := newTestLauncher(t)
	ctx := context.Background()

	got, err := l.Search(ctx, "firefox")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	require.NoError(t, l.Launch(ctx, got[0]))

	// The in-memory open history updates synchronously.
	_, ok := l.openHistory.Get(got[0].Key)
	assert.True(t, ok)

	// The persistent write is fire-and-forget; poll for it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		entry, err := l.HistoryStore().Get(ctx, got[0].Path)
		if err == nil {
			assert.Equal(t, uint64(1), entry.UseCount)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("history write never landed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := l.RecentlyUsed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, core.KindFileHistory, recent[0].Kind)
}

func TestLauncherLaunchRejectsInvalidCandidate(t *testing.T) {
	l := newTestLauncher(t)

	err := l.Launch(context.Background(), core.Candidate{Kind: core.KindApplication})
	assert.ErrorIs(t, err, core.ErrInvalidCandidate)
}

func TestLauncherLaunchSpecialSkipsStore(t *testing.T) {
	l := newTestLauncher(t)
	ctx := context.Background()

	special := core.Candidate{
		Kind:        core.KindSettingsAction,
		DisplayName: "Open Settings",
		Key:         core.SyntheticKey(core.KindSettingsAction, "settings"),
	}
	require.NoError(t, l.Launch(ctx, special))

	entries, err := l.HistoryStore().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLauncherNotesSource(t *testing.T) {
	ctx := context.Background()

	st, err := notes.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	_, err = st.Add(ctx, "Quarterly budget", "numbers for **Q3**")
	require.NoError(t, err)

	l := newTestLauncher(t, WithNotesStore(st))

	got, err := l.Search(ctx, "budget")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, core.KindNote, got[0].Kind)
	assert.Equal(t, "Quarterly budget", got[0].DisplayName)
}

func TestLauncherPluginAndFolderSources(t *testing.T) {
	l := newTestLauncher(t)
	ctx := context.Background()

	got, err := l.Search(ctx, "clipboard")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, core.KindPluginAction, got[0].Kind)

	got, err = l.Search(ctx, "downloads")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, core.KindSystemFolder, got[0].Kind)
}
