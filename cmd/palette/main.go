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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/palette"
	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source/ai"
	"github.com/poiesic/palette/source/ai/openai"
	"github.com/poiesic/palette/source/fsindex"
	"github.com/poiesic/palette/source/history"
)

func main() {
	app := &cli.App{
		Name:  "palette",
		Usage: "Launcher query core: ranked candidate search across local sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data directory for the history and notes stores",
				Value:   defaultDataDir(),
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run one query and print the ranked candidates",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "root",
						Usage: "Filesystem root to index for this search (repeatable)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum candidates to print",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible chat host for answer candidates",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Answer model name",
						Value: "qwen2.5:3b",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Overall search timeout",
						Value: 10 * time.Second,
					},
				},
			},
			{
				Name:  "history",
				Usage: "Inspect and update the open-history store",
				Subcommands: []*cli.Command{
					{
						Name:      "record",
						Usage:     "Record that a path was opened",
						ArgsUsage: "<path>",
						Action:    historyRecordCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "folder",
								Usage: "Record the path as a folder",
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List recorded entries, most recent first",
						Action: historyListCommand,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum entries to print",
								Value: 20,
							},
						},
					},
				},
			},
			{
				Name:  "index",
				Usage: "Manage the in-process filesystem index",
				Subcommands: []*cli.Command{
					{
						Name:      "build",
						Usage:     "Walk the given roots and report the index size",
						ArgsUsage: "<root> [root...]",
						Action:    indexBuildCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".palette"
	}
	return filepath.Join(home, ".palette")
}

type discardSink struct{}

func (discardSink) Show(items []core.Candidate) {}
func (discardSink) Clear()                      {}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	opts := []palette.LauncherOption{}

	if roots := c.StringSlice("root"); len(roots) > 0 {
		idx, err := fsindex.NewIndex(roots)
		if err != nil {
			return fmt.Errorf("failed to create filesystem index: %w", err)
		}
		if err := idx.Build(ctx); err != nil {
			return fmt.Errorf("failed to build filesystem index: %w", err)
		}
		opts = append(opts, palette.WithStreamingAdapter(idx))
	}

	if host := c.String("ai-host"); host != "" {
		aiConfig := ai.NewConfig(
			ai.WithHost(host),
			ai.WithModel(c.String("ai-model")),
		)
		answerer, err := openai.NewAnswerer(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create answerer: %w", err)
		}
		opts = append(opts, palette.WithAnswerer(answerer, aiConfig))
	}

	launcher, err := palette.NewLauncher(c.String("data"), discardSink{}, opts...)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}
	defer launcher.Close()

	candidates, err := launcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	limit := c.Int("limit")
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	for i, cand := range candidates {
		printCandidate(i+1, cand)
	}
	fmt.Fprintf(os.Stderr, "%d candidate(s)\n", len(candidates))
	return nil
}

func printCandidate(rank int, c core.Candidate) {
	line := fmt.Sprintf("%3d. [%s] %s", rank, c.Kind, c.DisplayName)
	if c.Path != "" {
		line += "  " + c.Path
	}
	if c.Description != "" {
		line += "  (" + c.Description + ")"
	}
	fmt.Println(line)
}

func historyRecordCommand(c *cli.Context) error {
	path := strings.TrimSpace(c.Args().First())
	if path == "" {
		return fmt.Errorf("path is required")
	}

	st, err := history.NewStore(filepath.Join(c.String("data"), "history"))
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer st.Close()

	if err := st.RecordOpen(context.Background(), path, "", c.Bool("folder")); err != nil {
		return fmt.Errorf("failed to record open: %w", err)
	}
	fmt.Printf("recorded %s\n", path)
	return nil
}

func historyListCommand(c *cli.Context) error {
	st, err := history.NewStore(filepath.Join(c.String("data"), "history"))
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer st.Close()

	entries, err := st.All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	limit := c.Int("limit")
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Printf("%s  uses=%d  last=%s  %s\n",
			e.Name, e.UseCount, e.LastUsed.Format(time.RFC3339), e.Path)
	}
	fmt.Fprintf(os.Stderr, "%d entr(ies)\n", len(entries))
	return nil
}

func indexBuildCommand(c *cli.Context) error {
	roots := c.Args().Slice()
	if len(roots) == 0 {
		return fmt.Errorf("at least one root is required")
	}

	idx, err := fsindex.NewIndex(roots)
	if err != nil {
		return fmt.Errorf("failed to create filesystem index: %w", err)
	}

	start := time.Now()
	if err := idx.Build(context.Background()); err != nil {
		return fmt.Errorf("failed to build filesystem index: %w", err)
	}
	fmt.Printf("index built in %s, availability %s\n",
		time.Since(start).Round(time.Millisecond), idx.Availability())
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
