package moga

import "context"

// MutateFunc perturbs a single solution in place.
type MutateFunc[S any] func(solution *S)

// PopulationMutateFunc perturbs the whole offspring slice in place.
type PopulationMutateFunc[S any] func(solutions []S)

// Mutator is the mutation stage of the pipeline. Mutation has no return
// value and, for the parallel forms, no ordering guarantee between
// solutions; each worker owns a disjoint part of the slice.
type Mutator[S any] struct {
	strategy Strategy
	workers  int
	each     MutateFunc[S]
	whole    PopulationMutateFunc[S]
}

// MutationFunc wraps a per-item mutation function into a sequential Mutator.
func MutationFunc[S any](fn MutateFunc[S]) Mutator[S] {
	if fn == nil {
		panic("moga: nil mutation function")
	}

	return Mutator[S]{each: fn}
}

// PopulationMutator wraps a whole-slice mutation function into a Mutator
// with the Custom strategy.
func PopulationMutator[S any](fn PopulationMutateFunc[S]) Mutator[S] {
	if fn == nil {
		panic("moga: nil mutation function")
	}

	return Mutator[S]{strategy: Custom, whole: fn}
}

// ParEach returns a copy of the mutator that mutates each solution
// concurrently.
func (m Mutator[S]) ParEach() Mutator[S] {
	m.strategy = ParallelEach

	return m
}

// ParBatch returns a copy of the mutator that mutates contiguous batches of
// solutions concurrently.
func (m Mutator[S]) ParBatch() Mutator[S] {
	m.strategy = ParallelBatch

	return m
}

// WithWorkers returns a copy of the mutator bounded to n concurrent workers.
// n <= 0 means runtime.GOMAXPROCS(0).
func (m Mutator[S]) WithWorkers(n int) Mutator[S] {
	m.workers = n

	return m
}

// Mutate perturbs every solution in place.
func (m Mutator[S]) Mutate(ctx context.Context, solutions []S) error {
	if m.whole != nil {
		m.whole(solutions)

		return nil
	}

	if m.each == nil {
		panic("moga: missing mutation operator")
	}

	return forEach(ctx, len(solutions), m.workers, m.strategy, func(_ context.Context, i int) error {
		m.each(&solutions[i])

		return nil
	})
}
