package deliver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/palette/core"
)

// Sink is the presentation-layer surface the scheduler pushes into. Show
// receives the prefix of the ranked list revealed so far; Clear empties the
// view. The scheduler is the only component that calls either.
type Sink interface {
	Show(items []core.Candidate)
	Clear()
}

const (
	defaultInitialChunk = 100
	defaultChunkStep    = 50
	defaultTickInterval = 16 * time.Millisecond
)

// Scheduler reveals a ranked list to the sink in bounded increments: an
// initial chunk immediately, then a further chunk per tick until exhausted.
// Starting a new reveal cancels the one in flight.
type Scheduler struct {
	sink    Sink
	initial int
	step    int
	tick    time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	current *reveal
}

// reveal identifies one Reveal call. Identity of this value, not just the
// generation id, guards each chunk: ranking can be recomputed for the same
// generation as late sources arrive, and the stale list must stop revealing.
type reveal struct {
	generation core.GenerationID
	list       []core.Candidate
	cancel     context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler) error

// WithChunkSizes sets the initial chunk size and the per-tick step.
// Defaults are 100 and 50.
func WithChunkSizes(initial, step int) Option {
	return func(s *Scheduler) error {
		if initial < 1 || step < 1 {
			return ErrInvalidChunkSize
		}
		s.initial = initial
		s.step = step
		return nil
	}
}

// WithTickInterval sets the pacing between chunks after the first.
// Default is one rendering tick (16ms).
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) error {
		if d <= 0 {
			return ErrInvalidTickInterval
		}
		s.tick = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScheduler creates a scheduler delivering into sink.
func NewScheduler(sink Sink, opts ...Option) (*Scheduler, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	s := &Scheduler{
		sink:    sink,
		initial: defaultInitialChunk,
		step:    defaultChunkStep,
		tick:    defaultTickInterval,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Reveal starts delivering list for the given generation, replacing any
// reveal in flight. The initial chunk is shown synchronously; the remainder
// goes out one chunk per tick on a background goroutine. Before each later
// chunk the scheduler re-validates that this reveal is still the current one
// and that stillWanted (if non-nil) holds; otherwise it aborts and clears
// the sink.
func (s *Scheduler) Reveal(ctx context.Context, generation core.GenerationID, list []core.Candidate, stillWanted func() bool) {
	rctx, cancel := context.WithCancel(ctx)
	rv := &reveal{generation: generation, list: list, cancel: cancel}

	shown := len(list)
	if shown > s.initial {
		shown = s.initial
	}

	// Take over and show the initial chunk in one critical section, so a
	// concurrent Reveal cannot interleave between the two.
	s.mu.Lock()
	if s.current != nil {
		s.current.cancel()
	}
	s.current = rv
	s.sink.Show(list[:shown])
	s.mu.Unlock()

	if shown == len(list) {
		cancel()
		return
	}
	go s.drain(rctx, rv, shown, stillWanted)
}

func (s *Scheduler) drain(ctx context.Context, rv *reveal, shown int, stillWanted func() bool) {
	limiter := rate.NewLimiter(rate.Every(s.tick), 1)
	limiter.Allow() // the initial chunk spent the first token

	for shown < len(rv.list) {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if stillWanted != nil && !stillWanted() {
			s.abort(rv)
			return
		}

		shown += s.step
		if shown > len(rv.list) {
			shown = len(rv.list)
		}
		if !s.showIfCurrent(rv, rv.list[:shown]) {
			return
		}
	}
	s.logger.Debug("reveal complete", "generation", rv.generation, "items", shown)
}

// showIfCurrent pushes items only while rv still owns the sink. The check
// and the Show hold the lock together; a chunk that loses the race to a
// replacement reveal is never shown.
func (s *Scheduler) showIfCurrent(rv *reveal, items []core.Candidate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != rv {
		return false
	}
	s.sink.Show(items)
	return true
}

// abort stops the reveal and clears the consumer's view, unless another
// reveal has already taken over.
func (s *Scheduler) abort(rv *reveal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != rv {
		return
	}
	rv.cancel()
	s.current = nil
	s.sink.Clear()
}

// Clear cancels any reveal in flight and empties the sink.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
	s.sink.Clear()
}
