package builtin

import (
	"context"
	"testing"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(cs []core.Candidate) []core.Kind {
	out := make([]core.Kind, len(cs))
	for i, c := range cs {
		out[i] = c.Kind
	}
	return out
}

func TestBuiltinSearch_DetectsURLs(t *testing.T) {
	a := NewAdapter()

	got, err := a.Search(context.Background(), "see https://example.com/docs and http://other.io")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, core.KindURL, got[0].Kind)
	assert.Equal(t, "https://example.com/docs", got[0].DisplayName)
	assert.Equal(t, "http://other.io", got[1].DisplayName)
}

func TestBuiltinSearch_JSONAction(t *testing.T) {
	a := NewAdapter()

	got, err := a.Search(context.Background(), `{"name": "x", "n": 2}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.KindJSONAction, got[0].Kind)

	got, err = a.Search(context.Background(), `{not json`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuiltinSearch_KeywordShortcuts(t *testing.T) {
	a := NewAdapter()

	t.Run("settings by prefix", func(t *testing.T) {
		got, err := a.Search(context.Background(), "sett")
		require.NoError(t, err)
		assert.Contains(t, kinds(got), core.KindSettingsAction)
	})

	t.Run("history by prefix", func(t *testing.T) {
		got, err := a.Search(context.Background(), "rec")
		require.NoError(t, err)
		assert.Contains(t, kinds(got), core.KindHistoryShortcut)
	})

	t.Run("single letter does not trigger", func(t *testing.T) {
		got, err := a.Search(context.Background(), "s")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBuiltinSearch_EmptyQuery(t *testing.T) {
	got, err := NewAdapter().Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
