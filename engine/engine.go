package engine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/deliver"
	"github.com/poiesic/palette/rank"
	"github.com/poiesic/palette/source"
)

// PathChecker resolves an absolute-path-looking query with a direct lookup,
// bypassing the filesystem index. A nil entry means the path does not exist.
type PathChecker func(ctx context.Context, path string) (*core.HistoryEntry, error)

const pathCheckSource = "path-check"

// Engine orchestrates one query at a time across all sources: it debounces
// edits, mints generations, fans adapter calls out onto a worker pool,
// accumulates streaming batches, ranks the merged set, and hands the result
// to the delivery scheduler. All adapter work is tagged with a generation
// and silently discarded once that generation is superseded.
type Engine struct {
	adapters  []source.Adapter
	streaming source.StreamingAdapter
	pathCheck PathChecker
	ranker    *rank.Ranker
	sched     *deliver.Scheduler
	history   *core.OpenHistory
	monitor   QueryMonitor
	logger    *slog.Logger
	pool      *ants.Pool
	gens      *Generations
	debouncer *Debouncer
	acc       *Accumulator

	mu            sync.Mutex
	gen           *Generation
	cancel        context.CancelFunc
	results       map[string][]core.Candidate
	pending       int
	lastRanked    []core.Candidate
	lastRankedGen core.GenerationID

	// pubMu serializes rank+reveal so a slow publish cannot overtake a
	// newer one for the same generation.
	pubMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine) error

// WithAdapters sets the request/response candidate sources.
func WithAdapters(adapters ...source.Adapter) Option {
	return func(e *Engine) error {
		e.adapters = append(e.adapters, adapters...)
		return nil
	}
}

// WithStreamingAdapter sets the high-volume filesystem-index source.
func WithStreamingAdapter(adapter source.StreamingAdapter) Option {
	return func(e *Engine) error {
		e.streaming = adapter
		return nil
	}
}

// WithPathChecker sets the direct lookup used for absolute-path queries.
func WithPathChecker(check PathChecker) Option {
	return func(e *Engine) error {
		e.pathCheck = check
		return nil
	}
}

// WithRanker overrides the default ranker.
func WithRanker(r *rank.Ranker) Option {
	return func(e *Engine) error {
		if r == nil {
			return nil
		}
		e.ranker = r
		return nil
	}
}

// WithOpenHistory sets the process-wide open history read by the ranker.
func WithOpenHistory(h *core.OpenHistory) Option {
	return func(e *Engine) error {
		if h == nil {
			h = core.NewOpenHistory(nil)
		}
		e.history = h
		return nil
	}
}

// WithMonitor sets the query lifecycle monitor.
// Default is a no-op monitor.
func WithMonitor(m QueryMonitor) Option {
	return func(e *Engine) error {
		if m == nil {
			m = &noopMonitor{}
		}
		e.monitor = m
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for adapter fan-out.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithDebounceDelays overrides the default settle delays.
func WithDebounceDelays(delays DebounceDelays) Option {
	return func(e *Engine) error {
		e.debouncer = NewDebouncer(func(settled string) { e.dispatch(settled) }, delays)
		return nil
	}
}

// New creates an engine delivering into sched.
func New(sched *deliver.Scheduler, opts ...Option) (*Engine, error) {
	if sched == nil {
		return nil, ErrSchedulerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ranker, err := rank.NewRanker()
	if err != nil {
		pool.Release()
		return nil, err
	}

	e := &Engine{
		sched:   sched,
		ranker:  ranker,
		history: core.NewOpenHistory(nil),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
		pool:    pool,
		gens:    NewGenerations(),
	}
	e.debouncer = NewDebouncer(func(settled string) { e.dispatch(settled) }, DefaultDebounceDelays())

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}
	e.acc = NewAccumulator(e.logger)

	return e, nil
}

// OnQueryChanged feeds one query edit into the debouncer. Emptying the query
// bypasses debouncing and clears all state synchronously.
func (e *Engine) OnQueryChanged(text string) {
	e.debouncer.Update(text)
}

// Search runs one settled query synchronously, bypassing the debouncer, and
// returns the final ranked list once every source has reported. Returns
// ErrSuperseded if a newer query replaced this one before completion.
func (e *Engine) Search(ctx context.Context, text string) ([]core.Candidate, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	gen := e.dispatch(trimmed)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-gen.Done():
	}
	if gen.Cancelled() {
		return nil, ErrSuperseded
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastRankedGen != gen.ID() {
		return nil, ErrSuperseded
	}
	out := make([]core.Candidate, len(e.lastRanked))
	copy(out, e.lastRanked)
	return out, nil
}

// ActiveGeneration returns the active generation, or nil when idle.
func (e *Engine) ActiveGeneration() *Generation {
	return e.gens.Active()
}

// dispatch starts work for one settled query. An empty query clears all
// state; resubmitting the active query returns its generation untouched.
func (e *Engine) dispatch(settled string) *Generation {
	if settled == "" {
		e.clear()
		return nil
	}

	gen, fresh := e.gens.Begin(settled)
	if !fresh {
		e.logger.Debug("resubmission rejected", "query", settled, "generation", gen.ID())
		return gen
	}

	ctx, cancel := context.WithCancel(context.Background())
	query := core.NewQuery(settled, gen.ID())

	directLookup := query.IsAbsolutePathLike() && e.pathCheck != nil
	streamingReady := !directLookup &&
		e.streaming != nil && e.streaming.Availability() == source.AvailabilityRunning

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	e.gen = gen
	e.results = make(map[string][]core.Candidate, len(e.adapters)+1)
	e.pending = len(e.adapters)
	if directLookup || streamingReady {
		e.pending++
	}
	total := e.pending
	e.mu.Unlock()

	e.acc.Reset(gen.ID())
	e.monitor.Dispatched(gen.ID(), settled)

	if total == 0 {
		e.publish(gen)
		e.finish(gen)
		return gen
	}

	for _, adapter := range e.adapters {
		ad := adapter
		e.submit(func() { e.runAdapter(ctx, gen, ad, settled) })
	}
	if directLookup {
		e.submit(func() { e.runPathCheck(ctx, gen, query.Trimmed) })
	} else if streamingReady {
		e.submit(func() { e.runStream(ctx, gen, settled) })
	}
	return gen
}

func (e *Engine) submit(task func()) {
	if err := e.pool.Submit(task); err != nil {
		e.logger.Error("error submitting source task to pool", "err", err)
		go task()
	}
}

func (e *Engine) runAdapter(ctx context.Context, gen *Generation, adapter source.Adapter, query string) {
	candidates, err := adapter.Search(ctx, query)

	if gen.Cancelled() {
		e.monitor.StaleDropped(gen.ID(), adapter.Name())
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			e.monitor.StaleDropped(gen.ID(), adapter.Name())
			return
		}
		// Isolated per adapter: this source contributes nothing, the
		// rest of the generation proceeds.
		e.logger.Warn("source search failed",
			"source", adapter.Name(), "generation", gen.ID(), "err", err)
		e.monitor.SourceFailed(gen.ID(), adapter.Name(), err)
		candidates = nil
	} else {
		e.monitor.SourceCompleted(gen.ID(), adapter.Name(), len(candidates))
	}

	e.commit(gen, adapter.Name(), candidates)
}

func (e *Engine) runPathCheck(ctx context.Context, gen *Generation, path string) {
	entry, err := e.pathCheck(ctx, path)

	if gen.Cancelled() {
		e.monitor.StaleDropped(gen.ID(), pathCheckSource)
		return
	}

	var candidates []core.Candidate
	switch {
	case err != nil:
		e.logger.Warn("path lookup failed", "path", path, "err", err)
		e.monitor.SourceFailed(gen.ID(), pathCheckSource, err)
	case entry != nil:
		candidates = []core.Candidate{entry.Candidate()}
		e.monitor.SourceCompleted(gen.ID(), pathCheckSource, 1)
	default:
		e.monitor.SourceCompleted(gen.ID(), pathCheckSource, 0)
	}

	e.commit(gen, pathCheckSource, candidates)
}

func (e *Engine) runStream(ctx context.Context, gen *Generation, query string) {
	name := e.streaming.Name()

	stream, err := e.streaming.Search(ctx, query, gen.ID())
	if err != nil {
		if errors.Is(err, source.ErrAdapterUnavailable) {
			e.logger.Info("filesystem index unavailable",
				"availability", e.streaming.Availability().String())
		} else if !errors.Is(err, context.Canceled) {
			e.logger.Warn("stream search failed", "source", name, "err", err)
		}
		e.monitor.SourceFailed(gen.ID(), name, err)
		e.commit(gen, name, nil)
		return
	}

	for batch := range stream.Batches {
		if e.acc.Apply(batch, e.gens.ActiveID()) {
			e.monitor.BatchApplied(gen.ID(), len(batch.Items), batch.TotalCount)
			e.publish(gen)
		}
	}

	if final, ok := <-stream.Final; ok {
		buffered, _ := e.acc.Snapshot(gen.ID())
		if e.acc.Finalize(final, e.gens.ActiveID()) {
			e.monitor.StreamReconciled(gen.ID(), len(buffered), len(final.Items))
		}
	}

	if gen.Cancelled() {
		e.monitor.StaleDropped(gen.ID(), name)
		return
	}
	e.commit(gen, name, nil) // stream items flow in through the accumulator
}

// commit records one source's results for gen, re-checking the generation
// before mutating shared state. A mismatch is a silent drop.
func (e *Engine) commit(gen *Generation, src string, candidates []core.Candidate) {
	e.mu.Lock()
	if e.gen != gen || gen.Cancelled() {
		e.mu.Unlock()
		e.monitor.StaleDropped(gen.ID(), src)
		return
	}
	e.results[src] = candidates
	e.pending--
	completed := e.pending == 0
	e.mu.Unlock()

	e.publish(gen)
	if completed {
		e.finish(gen)
	}
}

// merged collects the current direct results plus the streaming buffer.
func (e *Engine) merged(gen *Generation) []core.Candidate {
	e.mu.Lock()
	var out []core.Candidate
	if e.gen == gen {
		for _, candidates := range e.results {
			out = append(out, candidates...)
		}
	}
	e.mu.Unlock()

	streamed, _ := e.acc.Snapshot(gen.ID())
	return append(out, streamed...)
}

func (e *Engine) publish(gen *Generation) {
	e.pubMu.Lock()
	defer e.pubMu.Unlock()

	if gen.Cancelled() {
		return
	}

	ranked := e.ranker.Rank(e.merged(gen), gen.Query(), rank.Context{
		Now:     time.Now().UTC(),
		History: e.history,
	})

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	e.lastRanked = ranked
	e.lastRankedGen = gen.ID()
	e.mu.Unlock()

	e.monitor.Ranked(gen.ID(), len(ranked))
	e.sched.Reveal(context.Background(), gen.ID(), ranked, func() bool {
		return !gen.Cancelled()
	})
}

func (e *Engine) finish(gen *Generation) {
	e.mu.Lock()
	if e.gen == gen && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	gen.complete()
	e.monitor.Completed(gen.ID())
	e.logger.Debug("generation completed", "generation", gen.ID(), "query", gen.Query())
}

// clear supersedes the active generation and empties all downstream state.
func (e *Engine) clear() {
	e.gens.Clear()

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen = nil
	e.results = nil
	e.pending = 0
	e.lastRanked = nil
	e.lastRankedGen = 0
	e.mu.Unlock()

	e.acc.Reset(0)
	e.sched.Clear()
}

// Release releases the worker pool and stops the debouncer.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	e.debouncer.Stop()
	if e.pool != nil {
		e.pool.Release()
	}
}
