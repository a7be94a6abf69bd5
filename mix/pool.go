package mix

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach calls fn over disjoint [lo, hi) ranges covering [0, n). Ranges
// run concurrently once n reaches the parallel threshold. fn must only
// write to indices inside its own range.
//
// On cancellation forEach stops scheduling ranges and returns ctx.Err();
// the caller must then drop whatever fn wrote.
func (e *Engine) forEach(ctx context.Context, n int, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n < e.cfg.ParallelThreshold || e.cfg.Workers <= 1 {
		for lo := 0; lo < n; lo += e.cfg.ParallelThreshold {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(lo, min(lo+e.cfg.ParallelThreshold, n))
		}
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	size := chunkSize(n, e.cfg.Workers)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func chunkSize(n, workers int) int {
	chunks := workers * chunksPerWorker
	size := (n + chunks - 1) / chunks
	return max(size, minChunk)
}

// workersFor reports how many goroutines forEach uses for n items.
func (e *Engine) workersFor(n int) int {
	if n < e.cfg.ParallelThreshold {
		return 1
	}
	return min(e.cfg.Workers, (n+minChunk-1)/minChunk)
}
