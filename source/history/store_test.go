package history

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	st, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_LoggerThreaded(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	backend, err := OpenBackend("", true, logger)
	require.NoError(t, err)
	defer backend.Close()

	require.Same(t, logger, backend.logger)

	adapter := &badgerLoggerAdapter{logger: backend.logger}
	adapter.Infof("compaction done: %d", 3)
	assert.Contains(t, buf.String(), "compaction done: 3")
}

func TestStoreLoggerReachesBackend(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	st, err := NewMemoryStore(WithLogger(logger))
	require.NoError(t, err)
	defer st.Close()

	require.Same(t, logger, st.(*store).backend.logger)
}

func TestStoreClosed(t *testing.T) {
	st, err := NewMemoryStore()
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.RecordOpen(ctx, "/home/u/a.txt", "a.txt", false))
	require.NoError(t, st.Close())

	assert.ErrorIs(t, st.RecordOpen(ctx, "/home/u/a.txt", "a.txt", false), ErrStoreClosed)
	_, err = st.Get(ctx, "/home/u/a.txt")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = st.All(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestRecordOpen_NewEntry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.RecordOpen(ctx, `C:\Docs\report.docx`, "", false)
	require.NoError(t, err)

	entry, err := st.Get(ctx, `C:\Docs\report.docx`)
	require.NoError(t, err)
	assert.Equal(t, "report.docx", entry.Name)
	assert.Equal(t, uint64(1), entry.UseCount)
	assert.False(t, entry.IsFolder)
	assert.WithinDuration(t, time.Now().UTC(), entry.LastUsed, 5*time.Second)
}

func TestRecordOpen_IncrementsUseCount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, st.RecordOpen(ctx, "/home/u/notes.md", "notes.md", false))
	}

	entry, err := st.Get(ctx, "/home/u/notes.md")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), entry.UseCount)
}

func TestRecordOpen_KeyIsNormalized(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordOpen(ctx, `C:\Docs\Report.docx`, "Report.docx", false))
	require.NoError(t, st.RecordOpen(ctx, `c:/docs/report.docx`, "report.docx", false))

	// Differently spelled paths for the same file share one record.
	entry, err := st.Get(ctx, `C:\DOCS\REPORT.DOCX`)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), entry.UseCount)
}

func TestRecordOpen_EmptyPath(t *testing.T) {
	st := newTestStore(t)
	err := st.RecordOpen(context.Background(), "  ", "", false)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestGet_NotFound(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Get(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAll_RecencyOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordOpen(ctx, "/a/old.txt", "old.txt", false))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, st.RecordOpen(ctx, "/a/new.txt", "new.txt", false))

	entries, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new.txt", entries[0].Name)
	assert.Equal(t, "old.txt", entries[1].Name)
}

func TestOpenHistory_SeededFromStore(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordOpen(ctx, `C:\Docs\Report.docx`, "Report.docx", false))

	oh, err := st.OpenHistory(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, oh.Len())

	at, ok := oh.Get(core.NormalizeKey(`C:\Docs\Report.docx`))
	require.True(t, ok)
	assert.InDelta(t, time.Now().Unix(), at, 5)
}

func TestStoreSurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	st, err := NewStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, st.RecordOpen(ctx, "/home/u/keep.md", "keep.md", false))
	require.NoError(t, st.Close())

	st, err = NewStore(tmpDir)
	require.NoError(t, err)
	defer st.Close()

	entry, err := st.Get(ctx, "/home/u/keep.md")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), entry.UseCount)
}
