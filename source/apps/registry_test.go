package apps

import (
	"context"
	"testing"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApps() []core.Application {
	return []core.Application{
		{Name: "Firefox", Path: `C:\Apps\firefox.exe`},
		{Name: "微信", Path: `C:\Apps\wechat.exe`, NamePinyin: "weixin", NamePinyinInitials: "wx"},
		{Name: "Terminal", Path: "/usr/bin/terminal"},
	}
}

func TestRegistrySearch_NameSubstring(t *testing.T) {
	r, err := NewRegistry(testApps())
	require.NoError(t, err)

	got, err := r.Search(context.Background(), "fox")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Firefox", got[0].DisplayName)
	assert.Equal(t, core.KindApplication, got[0].Kind)
}

func TestRegistrySearch_PinyinFullAndInitials(t *testing.T) {
	r, err := NewRegistry(testApps())
	require.NoError(t, err)

	t.Run("full transliteration", func(t *testing.T) {
		got, err := r.Search(context.Background(), "weixin")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "微信", got[0].DisplayName)
	})

	t.Run("initials", func(t *testing.T) {
		got, err := r.Search(context.Background(), "wx")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "微信", got[0].DisplayName)
	})
}

func TestRegistrySearch_EmptyQueryReturnsAll(t *testing.T) {
	r, err := NewRegistry(testApps())
	require.NoError(t, err)

	got, err := r.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRegistryReplace_DropsIncompleteEntries(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	r.Replace([]core.Application{
		{Name: "Ok", Path: "/ok"},
		{Name: "", Path: "/nameless"},
		{Name: "pathless", Path: ""},
	})
	assert.Equal(t, 1, r.Len())
}
