package predgo

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// batchChunkSize is the number of limits handed to one worker at a time.
// Large enough to amortize goroutine overhead, small enough to react to
// cancellation.
const batchChunkSize = 1024

// Result is the outcome of one lookup in a batch query.
type Result struct {
	// Value is the predecessor, valid only when Found is true.
	Value uint64
	// Found is false when the limit lies below the smallest stored value.
	Found bool
}

// PredecessorBatch answers many predecessor queries in parallel.
//
// Results are positionally aligned with limits. Limits below the smallest
// stored value yield Found == false rather than an error; internal errors and
// context cancellation abort the whole batch.
func (t *YTrie) PredecessorBatch(ctx context.Context, limits []uint64) ([]Result, error) {
	start := time.Now()
	results, err := t.predecessorBatch(ctx, limits)
	t.metrics.RecordBatchQuery(len(limits), time.Since(start), err)
	t.logger.LogBatch(len(limits), time.Since(start), err)
	return results, err
}

func (t *YTrie) predecessorBatch(ctx context.Context, limits []uint64) ([]Result, error) {
	results := make([]Result, len(limits))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for lo := 0; lo < len(limits); lo += batchChunkSize {
		lo, hi := lo, min(lo+batchChunkSize, len(limits))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				v, err := t.predecessor(limits[i])
				switch {
				case errors.Is(err, ErrNoPredecessor):
					results[i] = Result{}
				case err != nil:
					return err
				default:
					results[i] = Result{Value: v, Found: true}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
