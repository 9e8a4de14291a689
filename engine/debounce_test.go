package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emissions collects settled queries in order.
type emissions struct {
	mu   sync.Mutex
	seen []string
}

func (e *emissions) record(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seen = append(e.seen, s)
}

func (e *emissions) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.seen))
	copy(out, e.seen)
	return out
}

func fastDelays() DebounceDelays {
	return DebounceDelays{
		Short:  20 * time.Millisecond,
		Medium: 15 * time.Millisecond,
		Long:   10 * time.Millisecond,
	}
}

func TestDebounceDelaysMonotonic(t *testing.T) {
	d := DefaultDebounceDelays()
	assert.Greater(t, d.Delay("ab"), d.Delay("abcd"))
	assert.Greater(t, d.Delay("abcd"), d.Delay("abcdefgh"))
	assert.Equal(t, d.Short, d.Delay("a"))
	assert.Equal(t, d.Medium, d.Delay("abc"))
	assert.Equal(t, d.Long, d.Delay("abcdef"))
}

// Typing "a" then "ab" inside the settle window dispatches once, for "ab".
func TestDebouncerCollapsesRapidEdits(t *testing.T) {
	rec := &emissions{}
	d := NewDebouncer(rec.record, fastDelays())
	defer d.Stop()

	d.Update("a")
	time.Sleep(5 * time.Millisecond) // within the settle window
	d.Update("ab")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"ab"}, rec.all())
}

func TestDebouncerRepeatOfSettledQueryIsNoop(t *testing.T) {
	rec := &emissions{}
	d := NewDebouncer(rec.record, fastDelays())
	defer d.Stop()

	d.Update("fire")
	time.Sleep(40 * time.Millisecond)
	d.Update("fire")
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, []string{"fire"}, rec.all())
}

func TestDebouncerEmptyBypassesDebounce(t *testing.T) {
	rec := &emissions{}
	d := NewDebouncer(rec.record, fastDelays())
	defer d.Stop()

	d.Update("fire")
	d.Update("")

	// Emitted synchronously, pending dispatch cancelled.
	assert.Equal(t, []string{""}, rec.all())
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{""}, rec.all())
}

func TestDebouncerReDispatchAfterClear(t *testing.T) {
	rec := &emissions{}
	d := NewDebouncer(rec.record, fastDelays())
	defer d.Stop()

	d.Update("fire")
	time.Sleep(40 * time.Millisecond)
	d.Update("")
	d.Update("fire")
	time.Sleep(40 * time.Millisecond)

	require.Equal(t, []string{"fire", "", "fire"}, rec.all(),
		"clearing resets the settled query, so the same text dispatches again")
}

func TestDebouncerTrimsInput(t *testing.T) {
	rec := &emissions{}
	d := NewDebouncer(rec.record, fastDelays())
	defer d.Stop()

	d.Update("  fire  ")
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, []string{"fire"}, rec.all())
}
