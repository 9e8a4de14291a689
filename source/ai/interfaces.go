package ai

import "context"

// Answerer produces a short natural-language answer to a query.
// Implementations must be thread-safe for concurrent use.
type Answerer interface {
	// Answer returns a plain-text answer to the query.
	// Returns an empty string, not an error, when the model declines.
	Answer(ctx context.Context, query string) (string, error)
}
