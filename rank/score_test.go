package rank

import (
	"testing"
	"time"

	"github.com/poiesic/palette/core"
	"github.com/stretchr/testify/assert"
)

func testContext(now time.Time) Context {
	return Context{Now: now, History: core.NewOpenHistory(nil)}
}

func TestScoreMatchTiers(t *testing.T) {
	w := DefaultWeights()
	now := time.Now().UTC()
	sctx := testContext(now)

	candidate := func(name string) core.Candidate {
		return core.Candidate{
			Kind:        core.KindFilesystemHit,
			DisplayName: name,
			Key:         core.NormalizeKey("/data/" + name),
			Path:        "/data/" + name,
		}
	}

	exact := Score(candidate("notes"), "notes", sctx, w)
	prefix := Score(candidate("notes.txt"), "notes", sctx, w)
	substring := Score(candidate("my notes.txt"), "notes", sctx, w)
	miss := Score(candidate("unrelated"), "notes", sctx, w)

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, substring)
	assert.Greater(t, substring, miss)
}

func TestScoreShortQueryExactBoost(t *testing.T) {
	w := DefaultWeights()
	sctx := testContext(time.Now().UTC())

	short := core.Candidate{Kind: core.KindFilesystemHit, DisplayName: "git", Key: "/bin/git", Path: "/bin/git"}
	long := core.Candidate{Kind: core.KindFilesystemHit, DisplayName: "gitignore", Key: "/bin/gitignore", Path: "/bin/gitignore"}

	boosted := Score(short, "git", sctx, w)
	unboosted := Score(long, "gitignore", sctx, w)

	// Both are exact matches; only the 2-4 rune query earns the boost.
	assert.InDelta(t, w.ShortQueryExactBoost, boosted-unboosted, 0.001)
}

func TestScorePinyinFallback(t *testing.T) {
	w := DefaultWeights()
	sctx := testContext(time.Now().UTC())

	app := core.Candidate{
		Kind:               core.KindApplication,
		DisplayName:        "微信",
		Key:                core.NormalizeKey(`C:\apps\wechat.exe`),
		Path:               `C:\apps\wechat.exe`,
		NamePinyin:         "weixin",
		NamePinyinInitials: "wx",
	}

	t.Run("initials match", func(t *testing.T) {
		s := Score(app, "wx", sctx, w)
		assert.GreaterOrEqual(t, s, w.PinyinInitialsMatch+w.ApplicationBonus)
	})

	t.Run("full pinyin match", func(t *testing.T) {
		s := Score(app, "weixin", sctx, w)
		assert.GreaterOrEqual(t, s, w.PinyinMatch+w.ApplicationBonus)
	})

	t.Run("non-application gets no pinyin score", func(t *testing.T) {
		hit := app
		hit.Kind = core.KindFilesystemHit
		s := Score(hit, "wx", sctx, w)
		assert.Less(t, s, w.PinyinMatch)
	})
}

func TestScorePathMatchOnlyWhenNameMisses(t *testing.T) {
	w := DefaultWeights()
	sctx := testContext(time.Now().UTC())

	nameAndPath := core.Candidate{
		Kind: core.KindFilesystemHit, DisplayName: "report.pdf",
		Key: "/report/report.pdf", Path: "/report/report.pdf",
	}
	pathOnly := core.Candidate{
		Kind: core.KindFilesystemHit, DisplayName: "summary.pdf",
		Key: "/report/summary.pdf", Path: "/report/summary.pdf",
	}

	withName := Score(nameAndPath, "report", sctx, w)
	withoutName := Score(pathOnly, "report", sctx, w)

	assert.Greater(t, withName, withoutName)
	assert.Greater(t, withoutName, 0.0, "path-only match still scores positive")
}

func TestScoreShallowPathBonus(t *testing.T) {
	w := DefaultWeights()
	sctx := testContext(time.Now().UTC())

	shallow := core.Candidate{Kind: core.KindFilesystemHit, DisplayName: "fire.txt", Key: "/fire.txt", Path: "/fire.txt"}
	deep := core.Candidate{
		Kind: core.KindFilesystemHit, DisplayName: "fire.txt",
		Key: "/a/b/c/d/e/fire.txt", Path: "/a/b/c/d/e/fire.txt",
	}

	assert.Greater(t, Score(shallow, "fire", sctx, w), Score(deep, "fire", sctx, w))
}

func TestScoreRecencyDecay(t *testing.T) {
	w := DefaultWeights()
	now := time.Now().UTC()
	sctx := testContext(now)

	entry := func(lastUsed time.Time) core.Candidate {
		return core.Candidate{
			Kind: core.KindFileHistory, DisplayName: "fire.txt",
			Key: "/fire.txt", Path: "/fire.txt", LastUsed: lastUsed,
		}
	}

	fresh := Score(entry(now), "fire", sctx, w)
	halfway := Score(entry(now.Add(-15*24*time.Hour)), "fire", sctx, w)
	expired := Score(entry(now.Add(-31*24*time.Hour)), "fire", sctx, w)

	assert.Greater(t, fresh, halfway)
	assert.Greater(t, halfway, expired)
	assert.InDelta(t, w.RecencyMax, fresh-expired, 0.001)
}

func TestScoreRecencyFromOpenHistory(t *testing.T) {
	w := DefaultWeights()
	now := time.Now().UTC()
	history := core.NewOpenHistory(map[string]int64{"/fire.txt": now.Unix()})
	sctx := Context{Now: now, History: history}

	hit := core.Candidate{
		Kind: core.KindFilesystemHit, DisplayName: "fire.txt",
		Key: "/fire.txt", Path: "/fire.txt",
	}
	cold := core.Candidate{
		Kind: core.KindFilesystemHit, DisplayName: "fire.txt",
		Key: "/other/fire.txt", Path: "/other/fire.txt",
	}

	assert.Greater(t, Score(hit, "fire", sctx, w), Score(cold, "fire", sctx, w))
}

func TestScoreUsageCapped(t *testing.T) {
	w := DefaultWeights()
	sctx := testContext(time.Now().UTC())

	moderate := core.Candidate{Kind: core.KindFilesystemHit, DisplayName: "a", Key: "/a", Path: "/a", UseCount: 10}
	heavy := core.Candidate{Kind: core.KindFilesystemHit, DisplayName: "a", Key: "/b", Path: "/b", UseCount: 10000}

	assert.Equal(t, Score(moderate, "a", sctx, w), Score(heavy, "a", sctx, w),
		"usage bonus must be capped")
}

func TestScoreEmptyQueryIsZero(t *testing.T) {
	w := DefaultWeights()
	c := core.Candidate{Kind: core.KindFileHistory, DisplayName: "a", Key: "/a", Path: "/a", UseCount: 50}
	assert.Zero(t, Score(c, "", testContext(time.Now().UTC()), w))
}
