package core

import "fmt"

// Validate checks that the candidate is well formed: a known kind, a display
// name, a dedup key, and a path for path kinds.
func (c *Candidate) Validate() error {
	if _, ok := kindNames[c.Kind]; !ok {
		return fmt.Errorf("%w: %w (%d)", ErrInvalidCandidate, ErrInvalidKind, c.Kind)
	}
	if c.DisplayName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyDisplayName)
	}
	if c.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyKey)
	}
	if c.Kind.PathKind() && c.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyPath)
	}
	return nil
}

// Validate checks internal batch consistency. A batch whose cumulative
// received count exceeds its own declared total is malformed; callers
// truncate it rather than reject it.
func (b *Batch) Validate() error {
	if b.ReceivedCount > b.TotalCount {
		return fmt.Errorf("%w: received %d exceeds declared total %d",
			ErrInvalidBatch, b.ReceivedCount, b.TotalCount)
	}
	return nil
}
