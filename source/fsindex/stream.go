package fsindex

import (
	"context"
	"strings"

	"github.com/poiesic/palette/core"
	"github.com/poiesic/palette/source"
)

// batchChannelDepth bounds how far the stream can run ahead of its consumer.
const batchChannelDepth = 8

// Search streams the matches for query back in batches, then sends the final
// authoritative result set. Returns ErrAdapterUnavailable unless the index is
// running. Cancelling ctx stops the stream mid-flight; the final result is
// then never sent.
func (idx *Index) Search(ctx context.Context, query string, generation core.GenerationID) (source.Stream, error) {
	if idx.Availability() != source.AvailabilityRunning {
		return source.Stream{}, source.ErrAdapterUnavailable
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return source.Stream{}, source.ErrEmptyQuery
	}

	matched := idx.match(q)
	total := uint64(len(matched))

	batches := make(chan core.Batch, batchChannelDepth)
	final := make(chan core.FinalResult, 1)

	go func() {
		defer close(final)
		defer close(batches)

		var sent uint64
		for start := 0; start < len(matched); start += idx.batchSize {
			end := start + idx.batchSize
			if end > len(matched) {
				end = len(matched)
			}

			items := make([]core.Candidate, 0, end-start)
			for i := start; i < end; i++ {
				items = append(items, matched[i].candidate())
			}
			sent += uint64(len(items))

			if ctx.Err() != nil {
				return
			}
			select {
			case batches <- core.Batch{
				Generation:    generation,
				Items:         items,
				TotalCount:    total,
				ReceivedCount: sent,
			}:
			case <-ctx.Done():
				return
			}
		}

		if ctx.Err() != nil {
			return
		}
		all := make([]core.Candidate, 0, len(matched))
		for i := range matched {
			all = append(all, matched[i].candidate())
		}
		select {
		case final <- core.FinalResult{
			Generation: generation,
			Items:      all,
			TotalCount: total,
		}:
		case <-ctx.Done():
		}
	}()

	return source.Stream{Batches: batches, Final: final}, nil
}
