package moga

import (
	"context"
	"sync/atomic"
)

// TerminateFunc decides, for a single solution, whether the whole
// optimization should stop. The engine stops as soon as any invocation
// returns true.
type TerminateFunc[S any] func(solution *S, scores Scores) bool

// PopulationTerminateFunc decides on the aligned sequences as a whole; the
// engine honors its return verbatim.
type PopulationTerminateFunc[S any] func(solutions []S, scores []Scores) bool

// Terminator is the termination stage of the pipeline.
type Terminator[S any] struct {
	strategy Strategy
	workers  int
	each     TerminateFunc[S]
	whole    PopulationTerminateFunc[S]
}

// TerminationFunc wraps a per-item termination predicate into a sequential
// Terminator. The sequential form short-circuits on the first true; the
// parallel forms may complete the scan speculatively.
func TerminationFunc[S any](fn TerminateFunc[S]) Terminator[S] {
	if fn == nil {
		panic("moga: nil termination function")
	}

	return Terminator[S]{each: fn}
}

// PopulationTerminator wraps a whole-slice termination predicate into a
// Terminator with the Custom strategy.
func PopulationTerminator[S any](fn PopulationTerminateFunc[S]) Terminator[S] {
	if fn == nil {
		panic("moga: nil termination function")
	}

	return Terminator[S]{strategy: Custom, whole: fn}
}

// GenerationTerminator stops the optimization after the given number of
// generations. The countdown is consumed by the returned value; build a
// fresh one per optimizer run.
func GenerationTerminator[S any](generations int) Terminator[S] {
	remaining := generations

	return PopulationTerminator(func([]S, []Scores) bool {
		if remaining == 0 {
			return true
		}

		remaining--

		return false
	})
}

// ParEach returns a copy of the terminator that evaluates the predicate for
// each solution concurrently.
func (t Terminator[S]) ParEach() Terminator[S] {
	t.strategy = ParallelEach

	return t
}

// ParBatch returns a copy of the terminator that evaluates the predicate for
// contiguous batches of solutions concurrently.
func (t Terminator[S]) ParBatch() Terminator[S] {
	t.strategy = ParallelBatch

	return t
}

// WithWorkers returns a copy of the terminator bounded to n concurrent
// workers. n <= 0 means runtime.GOMAXPROCS(0).
func (t Terminator[S]) WithWorkers(n int) Terminator[S] {
	t.workers = n

	return t
}

// Terminate reports whether the optimization should stop.
func (t Terminator[S]) Terminate(ctx context.Context, solutions []S, scores []Scores) (bool, error) {
	if t.whole != nil {
		return t.whole(solutions, scores), nil
	}

	if t.each == nil {
		panic("moga: missing termination operator")
	}

	if t.strategy == Sequential {
		for i := range solutions {
			if t.each(&solutions[i], scores[i]) {
				return true, nil
			}

			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		return false, nil
	}

	var hit atomic.Bool

	err := forEach(ctx, len(solutions), t.workers, t.strategy, func(_ context.Context, i int) error {
		if t.each(&solutions[i], scores[i]) {
			hit.Store(true)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return hit.Load(), nil
}
