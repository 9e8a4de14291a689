package source

import (
	"context"

	"github.com/poiesic/palette/core"
)

// Adapter is a request/response candidate source for one data domain.
// Implementations must be thread-safe; a call for a superseded generation may
// return late, so results must be cheap to discard and adapters must never
// mutate shared state on the caller's behalf.
type Adapter interface {
	// Name identifies the adapter in logs and monitor callbacks.
	Name() string

	// Search returns the candidates matching query, or an error.
	// A failed adapter degrades to zero results from that source; it never
	// aborts the rest of the generation.
	Search(ctx context.Context, query string) ([]core.Candidate, error)
}

// Availability describes the health of the streaming filesystem-index
// service. It is queried separately from searches and can change between
// queries.
type Availability int

const (
	// AvailabilityUnavailable means the service is not installed.
	AvailabilityUnavailable Availability = iota
	// AvailabilityStopped means the service is installed but not running.
	AvailabilityStopped
	// AvailabilityRunning means the service is answering queries.
	AvailabilityRunning
)

// String returns the lowercase name of the availability state.
func (a Availability) String() string {
	switch a {
	case AvailabilityStopped:
		return "stopped"
	case AvailabilityRunning:
		return "running"
	default:
		return "unavailable"
	}
}

// Stream carries the streaming adapter's out-of-band batches and its terminal
// authoritative response for one generation. The adapter closes Batches
// before sending on Final; both channels are closed when the stream ends.
// The engine's accumulator is the sole consumer.
type Stream struct {
	Batches <-chan core.Batch
	Final   <-chan core.FinalResult
}

// StreamingAdapter is the high-volume filesystem-index source. It emits zero
// or more batches followed by one final authoritative result set.
type StreamingAdapter interface {
	// Name identifies the adapter in logs and monitor callbacks.
	Name() string

	// Availability reports the current service health.
	Availability() Availability

	// Search starts a streaming query tagged with the given generation.
	// Returns ErrAdapterUnavailable if the service cannot answer queries.
	// Cancelling ctx stops the stream; any unread events are dropped.
	Search(ctx context.Context, query string, generation core.GenerationID) (Stream, error)
}
