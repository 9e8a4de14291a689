package plugins

import (
	"context"
	"testing"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	return NewRegistry([]Action{
		{Plugin: "clipboard", Name: "Clipboard History", Keywords: []string{"clip", "paste"}},
		{Plugin: "color", Name: "Pick Color", Description: "screen color picker"},
	})
}

func TestPluginsSearch_MatchesNamePluginKeywords(t *testing.T) {
	r := testRegistry()

	t.Run("by keyword", func(t *testing.T) {
		got, err := r.Search(context.Background(), "paste")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Clipboard History", got[0].DisplayName)
		assert.Equal(t, core.KindPluginAction, got[0].Kind)
	})

	t.Run("by plugin name", func(t *testing.T) {
		got, err := r.Search(context.Background(), "color")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pick Color", got[0].DisplayName)
	})
}

func TestPluginsSearch_EmptyQueryReturnsNothing(t *testing.T) {
	got, err := testRegistry().Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPluginsSearch_SyntheticKeysAreStable(t *testing.T) {
	r := testRegistry()

	first, err := r.Search(context.Background(), "clip")
	require.NoError(t, err)
	second, err := r.Search(context.Background(), "clip")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Key, second[0].Key)
	assert.Contains(t, first[0].Key, "palette://plugin-action/")
}
