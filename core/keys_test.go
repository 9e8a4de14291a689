package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	t.Run("separators and case collapse", func(t *testing.T) {
		assert.Equal(t, NormalizeKey(`C:\Users\Fire.txt`), NormalizeKey("c:/users/fire.txt"))
	})

	t.Run("trailing separator dropped", func(t *testing.T) {
		assert.Equal(t, NormalizeKey("/home/user/docs"), NormalizeKey("/home/user/docs/"))
	})

	t.Run("root is preserved", func(t *testing.T) {
		assert.Equal(t, "/", NormalizeKey("/"))
	})
}

func TestSyntheticKey(t *testing.T) {
	a := SyntheticKey(KindPluginAction, "calculator")
	b := SyntheticKey(KindPluginAction, "calculator")
	c := SyntheticKey(KindPluginAction, "translator")

	assert.Equal(t, a, b, "identical inputs must produce identical keys")
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "palette://plugin-action/")

	// Same name under a different kind lives in a different namespace.
	assert.NotEqual(t, a, SyntheticKey(KindNote, "calculator"))
}
