// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package palette

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/deliver"
	"github.com/poiesic/palette/engine"
	"github.com/poiesic/palette/source"
	"github.com/poiesic/palette/source/ai"
	"github.com/poiesic/palette/source/apps"
	"github.com/poiesic/palette/source/builtin"
	"github.com/poiesic/palette/source/folders"
	"github.com/poiesic/palette/source/history"
	"github.com/poiesic/palette/source/notes"
	"github.com/poiesic/palette/source/plugins"
)

const recordPoolSize = 2

// Launcher wires the stores, adapters, engine, and delivery scheduler into
// the query core of a desktop launcher. The presentation layer feeds query
// edits in through OnQueryChanged and receives ranked candidates through the
// Sink it supplied; Launch records what the user actually opened.
type Launcher struct {
	historyStore history.Store
	openHistory  *core.OpenHistory
	engine       *engine.Engine
	sched        *deliver.Scheduler
	recordPool   *ants.Pool
	logger       *slog.Logger
}

// LauncherOption configures a Launcher.
type LauncherOption func(*launcherOptions)

type launcherOptions struct {
	inMemory      bool
	apps          []core.Application
	folders       []folders.Folder
	pluginActions []plugins.Action
	extraAdapters []source.Adapter
	notesStore    notes.Store
	streaming     source.StreamingAdapter
	answerer      ai.Answerer
	aiConfig      *ai.Config
	monitor       engine.QueryMonitor
	logger        *slog.Logger
}

// WithApplications seeds the application registry.
func WithApplications(applications []core.Application) LauncherOption {
	return func(o *launcherOptions) {
		o.apps = applications
	}
}

// WithFolders configures the system-folder set.
func WithFolders(set []folders.Folder) LauncherOption {
	return func(o *launcherOptions) {
		o.folders = set
	}
}

// WithPluginActions seeds the plugin action registry.
func WithPluginActions(actions []plugins.Action) LauncherOption {
	return func(o *launcherOptions) {
		o.pluginActions = actions
	}
}

// WithNotesStore enables the notes source over the given store.
func WithNotesStore(store notes.Store) LauncherOption {
	return func(o *launcherOptions) {
		o.notesStore = store
	}
}

// WithAdapters registers additional candidate sources.
func WithAdapters(adapters ...source.Adapter) LauncherOption {
	return func(o *launcherOptions) {
		o.extraAdapters = append(o.extraAdapters, adapters...)
	}
}

// WithStreamingAdapter sets the filesystem-index source.
func WithStreamingAdapter(adapter source.StreamingAdapter) LauncherOption {
	return func(o *launcherOptions) {
		o.streaming = adapter
	}
}

// WithAnswerer enables the AI answer source.
func WithAnswerer(answerer ai.Answerer, config *ai.Config) LauncherOption {
	return func(o *launcherOptions) {
		o.answerer = answerer
		o.aiConfig = config
	}
}

// WithMonitor sets the query lifecycle monitor.
func WithMonitor(m engine.QueryMonitor) LauncherOption {
	return func(o *launcherOptions) {
		o.monitor = m
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LauncherOption {
	return func(o *launcherOptions) {
		o.logger = logger
	}
}

// WithMemoryStore keeps the history store in memory. For tests and
// ephemeral sessions.
func WithMemoryStore() LauncherOption {
	return func(o *launcherOptions) {
		o.inMemory = true
	}
}

// NewLauncher creates a launcher persisting under dataDir and delivering
// ranked candidates into sink.
func NewLauncher(dataDir string, sink deliver.Sink, opts ...LauncherOption) (*Launcher, error) {
	options := &launcherOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	var (
		historyStore history.Store
		err          error
	)
	if options.inMemory {
		historyStore, err = history.NewMemoryStore(history.WithLogger(options.logger))
	} else {
		historyStore, err = history.NewStore(
			filepath.Join(dataDir, "history"), history.WithLogger(options.logger))
	}
	if err != nil {
		return nil, err
	}

	openHistory, err := historyStore.OpenHistory(context.Background())
	if err != nil {
		historyStore.Close()
		return nil, err
	}

	adapters := []source.Adapter{builtin.NewAdapter()}

	registry, err := apps.NewRegistry(options.apps, apps.WithLogger(options.logger))
	if err != nil {
		historyStore.Close()
		return nil, err
	}
	adapters = append(adapters, registry)

	historyAdapter, err := history.NewAdapter(historyStore, options.logger)
	if err != nil {
		historyStore.Close()
		return nil, err
	}
	adapters = append(adapters, historyAdapter)

	if len(options.folders) > 0 {
		adapters = append(adapters, folders.NewAdapter(options.folders))
	}
	if len(options.pluginActions) > 0 {
		adapters = append(adapters, plugins.NewRegistry(options.pluginActions))
	}
	if options.notesStore != nil {
		notesAdapter, err := notes.NewAdapter(options.notesStore, options.logger)
		if err != nil {
			historyStore.Close()
			return nil, err
		}
		adapters = append(adapters, notesAdapter)
	}
	if options.answerer != nil {
		answerAdapter, err := ai.NewAdapter(options.answerer, options.aiConfig)
		if err != nil {
			historyStore.Close()
			return nil, err
		}
		adapters = append(adapters, answerAdapter)
	}
	adapters = append(adapters, options.extraAdapters...)

	sched, err := deliver.NewScheduler(sink, deliver.WithLogger(options.logger))
	if err != nil {
		historyStore.Close()
		return nil, err
	}

	engineOpts := []engine.Option{
		engine.WithAdapters(adapters...),
		engine.WithPathChecker(history.NewPathChecker(historyStore)),
		engine.WithOpenHistory(openHistory),
		engine.WithLogger(options.logger),
	}
	if options.streaming != nil {
		engineOpts = append(engineOpts, engine.WithStreamingAdapter(options.streaming))
	}
	if options.monitor != nil {
		engineOpts = append(engineOpts, engine.WithMonitor(options.monitor))
	}

	eng, err := engine.New(sched, engineOpts...)
	if err != nil {
		historyStore.Close()
		return nil, err
	}

	recordPool, err := ants.NewPool(recordPoolSize)
	if err != nil {
		eng.Release()
		historyStore.Close()
		return nil, err
	}

	return &Launcher{
		historyStore: historyStore,
		openHistory:  openHistory,
		engine:       eng,
		sched:        sched,
		recordPool:   recordPool,
		logger:       options.logger,
	}, nil
}

// OnQueryChanged feeds one query edit into the debouncer.
func (l *Launcher) OnQueryChanged(text string) {
	l.engine.OnQueryChanged(text)
}

// Search runs one settled query synchronously, bypassing the debouncer.
func (l *Launcher) Search(ctx context.Context, text string) ([]core.Candidate, error) {
	return l.engine.Search(ctx, text)
}

// Launch records that the user opened candidate. The in-memory open history
// is updated synchronously so the very next query ranks the candidate as
// just-used; the persistent write happens fire-and-forget on a small pool.
// The actual process or file launch belongs to the presentation layer.
func (l *Launcher) Launch(ctx context.Context, candidate core.Candidate) error {
	if err := candidate.Validate(); err != nil {
		return err
	}

	l.openHistory.Set(candidate.Key, time.Now().Unix())

	if !candidate.Kind.PathKind() {
		return nil
	}

	path, name, isFolder := candidate.Path, candidate.DisplayName, candidate.IsFolder
	err := l.recordPool.Submit(func() {
		if err := l.historyStore.RecordOpen(context.Background(), path, name, isFolder); err != nil {
			l.logger.Warn("failed to record open", "path", path, "err", err)
		}
	})
	if err != nil {
		l.logger.Error("error submitting history write to pool", "err", err)
	}
	return nil
}

// RecentlyUsed returns up to limit history entries, most recent first.
func (l *Launcher) RecentlyUsed(ctx context.Context, limit int) ([]core.Candidate, error) {
	entries, err := l.historyStore.All(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	candidates := make([]core.Candidate, 0, len(entries))
	for i := range entries {
		candidates = append(candidates, entries[i].Candidate())
	}
	return candidates, nil
}

// HistoryStore exposes the underlying history store.
func (l *Launcher) HistoryStore() history.Store {
	return l.historyStore
}

// Close releases the engine, worker pools, and stores.
func (l *Launcher) Close() error {
	l.engine.Release()
	l.recordPool.Release()

	if err := l.historyStore.Close(); err != nil {
		l.logger.Error("error closing history store", "err", err)
		return err
	}
	return nil
}
