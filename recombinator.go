package moga

import (
	"context"
	"fmt"
)

// RecombineFunc creates offspring from a fixed-size group of parents. The
// executor always invokes it with exactly as many parents as the
// Recombinator was built for; the returned offspring count must be the same
// on every invocation.
type RecombineFunc[S any] func(parents []*S) []S

// PopulationRecombineFunc consumes the full parent list and returns any
// offspring vector.
type PopulationRecombineFunc[S any] func(parents []*S) []S

// maxParents bounds the arity of a per-item recombination group.
const maxParents = 4

// Recombinator is the recombination stage of the pipeline. The per-item form
// enumerates every combination of `parents` parents from the selected list
// and flattens the offspring of each group into one vector: m selected
// parents yield C(m, parents) groups. Inputs smaller than the group size
// produce no offspring.
type Recombinator[S any] struct {
	strategy Strategy
	workers  int
	parents  int
	each     RecombineFunc[S]
	whole    PopulationRecombineFunc[S]
}

// RecombinationFunc wraps a per-item recombination function taking groups of
// the given number of parents, 1 to 4.
func RecombinationFunc[S any](parents int, fn RecombineFunc[S]) Recombinator[S] {
	if fn == nil {
		panic("moga: nil recombination function")
	}

	if parents < 1 || parents > maxParents {
		panic(fmt.Sprintf("moga: recombination parent count must be between 1 and %d, got %d", maxParents, parents))
	}

	return Recombinator[S]{parents: parents, each: fn}
}

// PairRecombination wraps the common two-parents-one-offspring shape.
func PairRecombination[S any](fn func(a, b *S) S) Recombinator[S] {
	if fn == nil {
		panic("moga: nil recombination function")
	}

	return RecombinationFunc(2, func(parents []*S) []S {
		return []S{fn(parents[0], parents[1])}
	})
}

// PopulationRecombinator wraps a whole-slice recombination function into a
// Recombinator with the Custom strategy.
func PopulationRecombinator[S any](fn PopulationRecombineFunc[S]) Recombinator[S] {
	if fn == nil {
		panic("moga: nil recombination function")
	}

	return Recombinator[S]{strategy: Custom, whole: fn}
}

// ParEach returns a copy of the recombinator that processes each parent
// combination concurrently.
func (r Recombinator[S]) ParEach() Recombinator[S] {
	r.strategy = ParallelEach

	return r
}

// ParBatch returns a copy of the recombinator that processes contiguous
// batches of parent combinations concurrently.
func (r Recombinator[S]) ParBatch() Recombinator[S] {
	r.strategy = ParallelBatch

	return r
}

// WithWorkers returns a copy of the recombinator bounded to n concurrent
// workers. n <= 0 means runtime.GOMAXPROCS(0).
func (r Recombinator[S]) WithWorkers(n int) Recombinator[S] {
	r.workers = n

	return r
}

// Recombine produces the offspring of the selected parents. Offspring order
// follows the lexicographic order of the parent combinations.
func (r Recombinator[S]) Recombine(ctx context.Context, parents []*S) ([]S, error) {
	if r.whole != nil {
		return r.whole(parents), nil
	}

	if r.each == nil {
		panic("moga: missing recombination operator")
	}

	groups := combinations(len(parents), r.parents)
	if len(groups) == 0 {
		return nil, nil
	}

	results := make([][]S, len(groups))

	err := forEach(ctx, len(groups), r.workers, r.strategy, func(_ context.Context, i int) error {
		group := make([]*S, r.parents)
		for at, idx := range groups[i] {
			group[at] = parents[idx]
		}

		results[i] = r.each(group)

		return nil
	})
	if err != nil {
		return nil, err
	}

	var offspring []S
	for _, res := range results {
		offspring = append(offspring, res...)
	}

	return offspring, nil
}

// combinations enumerates every p-element subset of [0, m) in lexicographic
// order. Returns nil when p > m.
func combinations(m, p int) [][]int {
	if p > m || p == 0 {
		return nil
	}

	current := make([]int, p)
	for i := range current {
		current[i] = i
	}

	var combos [][]int

	for {
		combos = append(combos, append([]int(nil), current...))

		// Advance the rightmost index that still has room to move.
		i := p - 1
		for i >= 0 && current[i] == m-p+i {
			i--
		}

		if i < 0 {
			return combos
		}

		current[i]++
		for j := i + 1; j < p; j++ {
			current[j] = current[j-1] + 1
		}
	}
}
