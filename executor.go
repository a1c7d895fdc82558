package moga

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Strategy tags how a per-item operator stage should be applied across a
// population. The engine never inspects which strategy an operator uses; it
// always invokes the stage through its Test/Select/Recombine/Mutate/
// Terminate method, which routes on this tag internally.
type Strategy int

const (
	// Sequential applies the per-item operator to elements in index order
	// on the calling goroutine.
	Sequential Strategy = iota
	// ParallelEach applies the per-item operator to each element
	// concurrently.
	ParallelEach
	// ParallelBatch splits the aligned sequences into contiguous chunks and
	// applies the per-item operator to each chunk concurrently.
	ParallelBatch
	// Custom marks an operator that supplies its own whole-slice
	// implementation; the executor never reaches this tag, since a custom
	// operator bypasses forEach entirely.
	Custom
)

// forEach applies fn to every index in [0, n) according to strategy,
// fanning out over an errgroup-bounded worker pool for the parallel
// strategies. workers <= 0 defaults to runtime.GOMAXPROCS(0).
func forEach(ctx context.Context, n, workers int, strategy Strategy, fn func(ctx context.Context, i int) error) error {
	switch strategy {
	case Sequential, Custom:
		for i := range n {
			if err := fn(ctx, i); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		return nil

	case ParallelEach:
		return parallelEach(ctx, n, workers, fn)

	case ParallelBatch:
		return parallelBatch(ctx, n, workers, fn)

	default:
		panic("moga: unknown execution strategy")
	}
}

func parallelEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(ctx, i)
		})
	}

	return g.Wait()
}

// batchSize computes max(1, ceil(n/workers)), the contiguous chunk size used
// by the parallel-batch strategy. When n < workers, this degrades to a
// chunk size of 1, i.e. parallel-each.
func batchSize(n, workers int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}

	return size
}

func parallelBatch(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	size := batchSize(n, workers)

	g, ctx := errgroup.WithContext(ctx)

	for start := 0; start < n; start += size {
		end := min(start+size, n)

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				if err := fn(ctx, i); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return g.Wait()
}
