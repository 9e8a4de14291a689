package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

const displayNameLen = 80

// Adapter surfaces one AI-answer candidate for question-like queries. The
// answer always ranks in the fixed specials band, ahead of every other
// candidate.
type Adapter struct {
	answerer Answerer
	minWords int
	logger   *slog.Logger
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter creates an adapter over the given answerer.
func NewAdapter(answerer Answerer, config *Config) (*Adapter, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{
		answerer: answerer,
		minWords: config.MinQueryWords,
		logger:   slog.Default().With("component", "ai-adapter"),
	}, nil
}

// Name identifies the adapter in logs and monitor callbacks.
func (a *Adapter) Name() string {
	return "ai"
}

// Search asks the answerer for queries long enough to be questions. Shorter
// queries yield nothing; the launcher lookup sources handle those.
func (a *Adapter) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	trimmed := strings.TrimSpace(query)
	if len(strings.Fields(trimmed)) < a.minWords {
		return nil, nil
	}

	answer, err := a.answerer.Answer(ctx, trimmed)
	if err != nil {
		return nil, &source.AdapterError{Source: a.Name(), Err: err}
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}

	return []core.Candidate{{
		Kind:        core.KindAIAnswer,
		DisplayName: displayName(answer),
		Key:         core.SyntheticKey(core.KindAIAnswer, trimmed),
		Description: answer,
	}}, nil
}

func displayName(answer string) string {
	if line, _, found := strings.Cut(answer, "\n"); found {
		answer = line
	}
	runes := []rune(answer)
	if len(runes) <= displayNameLen {
		return answer
	}
	return string(runes[:displayNameLen])
}
