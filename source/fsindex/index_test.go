package fsindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populateRoot(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

func builtIndex(t *testing.T, root string, opts ...Option) *Index {
	t.Helper()
	idx, err := NewIndex([]string{root}, opts...)
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background()))
	return idx
}

func collect(t *testing.T, stream source.Stream) ([]core.Batch, *core.FinalResult) {
	t.Helper()
	var batches []core.Batch
	for b := range stream.Batches {
		batches = append(batches, b)
	}
	if final, ok := <-stream.Final; ok {
		return batches, &final
	}
	return batches, nil
}

func TestIndexAvailabilityLifecycle(t *testing.T) {
	idx, err := NewIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, source.AvailabilityUnavailable, idx.Availability())

	root := populateRoot(t, "a.txt")
	idx, err = NewIndex([]string{root})
	require.NoError(t, err)
	assert.Equal(t, source.AvailabilityStopped, idx.Availability())

	require.NoError(t, idx.Build(context.Background()))
	assert.Equal(t, source.AvailabilityRunning, idx.Availability())

	idx.Stop()
	assert.Equal(t, source.AvailabilityStopped, idx.Availability())
}

func TestSearchRefusedUnlessRunning(t *testing.T) {
	root := populateRoot(t, "a.txt")
	idx, err := NewIndex([]string{root})
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "a", 1)
	assert.ErrorIs(t, err, source.ErrAdapterUnavailable)
}

func TestSearchStreamsBatchesThenFinal(t *testing.T) {
	root := populateRoot(t,
		"report-1.txt", "report-2.txt", "report-3.txt",
		"sub/report-4.txt", "sub/other.md")
	idx := builtIndex(t, root, WithBatchSize(2))

	stream, err := idx.Search(context.Background(), "report", 7)
	require.NoError(t, err)

	batches, final := collect(t, stream)
	require.Len(t, batches, 2)
	require.NotNil(t, final)

	var streamed int
	for _, b := range batches {
		assert.Equal(t, core.GenerationID(7), b.Generation)
		assert.Equal(t, uint64(4), b.TotalCount)
		streamed += len(b.Items)
	}
	assert.Equal(t, 4, streamed)
	assert.Equal(t, uint64(4), batches[len(batches)-1].ReceivedCount)

	assert.Equal(t, core.GenerationID(7), final.Generation)
	assert.Len(t, final.Items, 4)
	assert.Equal(t, uint64(4), final.TotalCount)
	for _, c := range final.Items {
		assert.Equal(t, core.KindFilesystemHit, c.Kind)
		assert.Equal(t, core.NormalizeKey(c.Path), c.Key)
	}
}

func TestSearchMatchIsCaseInsensitiveOnName(t *testing.T) {
	root := populateRoot(t, "Notes.TXT", "sub/readme.md")
	idx := builtIndex(t, root)

	stream, err := idx.Search(context.Background(), "NOTES", 1)
	require.NoError(t, err)

	_, final := collect(t, stream)
	require.NotNil(t, final)
	require.Len(t, final.Items, 1)
	assert.Equal(t, "Notes.TXT", final.Items[0].DisplayName)
}

func TestSearchCancelledContextStopsStream(t *testing.T) {
	root := populateRoot(t, "file-x.txt")
	idx := builtIndex(t, root, WithBatchSize(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream, err := idx.Search(ctx, "file", 1)
	require.NoError(t, err)

	// A cancelled stream closes both channels without a final result.
	for range stream.Batches {
	}
	_, ok := <-stream.Final
	assert.False(t, ok)
}

func TestSearchEmptyQuery(t *testing.T) {
	root := populateRoot(t, "a.txt")
	idx := builtIndex(t, root)

	_, err := idx.Search(context.Background(), "  ", 1)
	assert.ErrorIs(t, err, source.ErrEmptyQuery)
}

func TestBuildIndexesDirectories(t *testing.T) {
	root := populateRoot(t, "projects/demo/main.go")
	idx := builtIndex(t, root)

	stream, err := idx.Search(context.Background(), "projects", 1)
	require.NoError(t, err)

	_, final := collect(t, stream)
	require.NotNil(t, final)
	require.Len(t, final.Items, 1)
	assert.True(t, final.Items[0].IsFolder)
}
