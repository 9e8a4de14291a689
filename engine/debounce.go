package engine

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DebounceDelays holds the settle delays per query-length bracket. Short
// queries are cheap to re-issue but noisy, so they wait longest; long
// queries are expensive per source and should resolve faster once the user
// pauses. The delays must be monotonically non-increasing in query length.
type DebounceDelays struct {
	Short  time.Duration // <= 2 runes
	Medium time.Duration // 3-5 runes
	Long   time.Duration // >= 6 runes
}

// DefaultDebounceDelays returns the tuned settle delays.
func DefaultDebounceDelays() DebounceDelays {
	return DebounceDelays{
		Short:  400 * time.Millisecond,
		Medium: 300 * time.Millisecond,
		Long:   200 * time.Millisecond,
	}
}

// Delay returns the settle delay for the given trimmed query.
func (d DebounceDelays) Delay(trimmed string) time.Duration {
	switch n := utf8.RuneCountInString(trimmed); {
	case n <= 2:
		return d.Short
	case n <= 5:
		return d.Medium
	default:
		return d.Long
	}
}

// Debouncer collapses rapid query edits into one settled emission per
// settling period. Every edit re-arms the timer; an edit that exactly
// repeats the last settled query does not re-emit. Emptying the query
// bypasses debouncing entirely and emits synchronously so all downstream
// state clears at once.
type Debouncer struct {
	emit   func(settled string)
	delays DebounceDelays

	mu          sync.Mutex
	timer       *time.Timer
	lastSettled string
}

// NewDebouncer creates a debouncer calling emit with each settled query.
// emit runs on the timer goroutine, or synchronously for the empty query.
func NewDebouncer(emit func(settled string), delays DebounceDelays) *Debouncer {
	return &Debouncer{emit: emit, delays: delays}
}

// Update feeds one query edit into the debouncer.
func (d *Debouncer) Update(text string) {
	trimmed := strings.TrimSpace(text)

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if trimmed == "" {
		d.lastSettled = ""
		d.mu.Unlock()
		d.emit("")
		return
	}

	d.timer = time.AfterFunc(d.delays.Delay(trimmed), func() {
		d.settle(trimmed)
	})
	d.mu.Unlock()
}

func (d *Debouncer) settle(trimmed string) {
	d.mu.Lock()
	if trimmed == d.lastSettled {
		d.mu.Unlock()
		return
	}
	d.lastSettled = trimmed
	d.mu.Unlock()
	d.emit(trimmed)
}

// Stop cancels any pending emission. The debouncer remains usable.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
