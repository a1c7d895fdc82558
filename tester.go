package moga

import (
	"context"
	"fmt"
)

// TestFunc evaluates the fitness vector of a single solution. Every
// invocation within one optimizer run must return a vector of the same
// length.
type TestFunc[S any] func(solution *S) Scores

// PopulationTestFunc evaluates the whole population at once. It must return
// exactly one score vector per solution, in matching order.
type PopulationTestFunc[S any] func(solutions []S) []Scores

// ScoreCountMismatchError reports a test operator that produced a score
// vector count different from the solution count. The spea2 engine returns
// it from Optimize; the nsga2 engine panics with the same value.
type ScoreCountMismatchError struct {
	Actual   int
	Expected int
}

func (e ScoreCountMismatchError) Error() string {
	return fmt.Sprintf("moga: test operator returned %d score vectors, expected %d", e.Actual, e.Expected)
}

// Tester is the test stage of the pipeline. Build one from a per-item
// function with TesterFunc or ObjectiveTester, or from a whole-slice
// function with PopulationTester.
type Tester[S any] struct {
	strategy Strategy
	workers  int
	each     TestFunc[S]
	whole    PopulationTestFunc[S]
}

// TesterFunc wraps a per-item test function into a sequential Tester.
func TesterFunc[S any](fn TestFunc[S]) Tester[S] {
	if fn == nil {
		panic("moga: nil test function")
	}

	return Tester[S]{each: fn}
}

// ObjectiveTester builds a Tester from one closure per objective. Calling
// each closure and packing the results into a vector is equivalent to a
// TestFunc returning the same vector.
func ObjectiveTester[S any](objectives ...func(solution *S) Score) Tester[S] {
	if len(objectives) == 0 {
		panic("moga: no objective functions")
	}

	return TesterFunc(func(solution *S) Scores {
		scores := make(Scores, len(objectives))
		for i, objective := range objectives {
			scores[i] = objective(solution)
		}

		return scores
	})
}

// PopulationTester wraps a whole-slice test function into a Tester with the
// Custom strategy. The caller owns the internals; the function runs on the
// calling goroutine.
func PopulationTester[S any](fn PopulationTestFunc[S]) Tester[S] {
	if fn == nil {
		panic("moga: nil test function")
	}

	return Tester[S]{strategy: Custom, whole: fn}
}

// ParEach returns a copy of the tester that evaluates each solution
// concurrently.
func (t Tester[S]) ParEach() Tester[S] {
	t.strategy = ParallelEach

	return t
}

// ParBatch returns a copy of the tester that evaluates contiguous batches of
// solutions concurrently.
func (t Tester[S]) ParBatch() Tester[S] {
	t.strategy = ParallelBatch

	return t
}

// WithWorkers returns a copy of the tester bounded to n concurrent workers.
// n <= 0 means runtime.GOMAXPROCS(0).
func (t Tester[S]) WithWorkers(n int) Tester[S] {
	t.workers = n

	return t
}

// Test evaluates the fitness of every solution, aligned index-wise with the
// input. The returned error is non-nil only when ctx is cancelled; score
// count validation is left to the engines, which differ in how they report
// it.
func (t Tester[S]) Test(ctx context.Context, solutions []S) ([]Scores, error) {
	if t.whole != nil {
		return t.whole(solutions), nil
	}

	if t.each == nil {
		panic("moga: missing test operator")
	}

	scores := make([]Scores, len(solutions))

	err := forEach(ctx, len(solutions), t.workers, t.strategy, func(_ context.Context, i int) error {
		scores[i] = t.each(&solutions[i])

		return nil
	})
	if err != nil {
		return nil, err
	}

	return scores, nil
}
