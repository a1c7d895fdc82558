package moga

import (
	"context"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// SelectFunc decides whether a single solution becomes a parent for the next
// generation.
type SelectFunc[S any] func(solution *S, scores Scores) bool

// PopulationSelectFunc selects parents from the whole population at once. It
// may return any subset, with repetition and in any order; the returned
// pointers must point into the solutions slice it was given.
type PopulationSelectFunc[S any] func(solutions []S, scores []Scores) []*S

// Selector is the selection stage of the pipeline. Build one from a per-item
// predicate with SelectionFunc, from a whole-slice function with
// PopulationSelector, or use one of the stock selectors below.
type Selector[S any] struct {
	strategy Strategy
	workers  int
	each     SelectFunc[S]
	whole    PopulationSelectFunc[S]
}

// SelectionFunc wraps a per-item predicate into a sequential Selector. The
// executor keeps the solutions for which the predicate returns true, in
// index order.
func SelectionFunc[S any](fn SelectFunc[S]) Selector[S] {
	if fn == nil {
		panic("moga: nil selection function")
	}

	return Selector[S]{each: fn}
}

// PopulationSelector wraps a whole-slice selection function into a Selector
// with the Custom strategy.
func PopulationSelector[S any](fn PopulationSelectFunc[S]) Selector[S] {
	if fn == nil {
		panic("moga: nil selection function")
	}

	return Selector[S]{strategy: Custom, whole: fn}
}

// ParEach returns a copy of the selector that evaluates the predicate for
// each solution concurrently.
func (s Selector[S]) ParEach() Selector[S] {
	s.strategy = ParallelEach

	return s
}

// ParBatch returns a copy of the selector that evaluates the predicate for
// contiguous batches of solutions concurrently.
func (s Selector[S]) ParBatch() Selector[S] {
	s.strategy = ParallelBatch

	return s
}

// WithWorkers returns a copy of the selector bounded to n concurrent
// workers. n <= 0 means runtime.GOMAXPROCS(0).
func (s Selector[S]) WithWorkers(n int) Selector[S] {
	s.workers = n

	return s
}

// Select picks parents from the population. The returned pointers point into
// the solutions slice; the engines never reallocate that slice while the
// parents are alive.
func (s Selector[S]) Select(ctx context.Context, solutions []S, scores []Scores) ([]*S, error) {
	if s.whole != nil {
		return s.whole(solutions, scores), nil
	}

	if s.each == nil {
		panic("moga: missing selection operator")
	}

	keep := make([]bool, len(solutions))

	err := forEach(ctx, len(solutions), s.workers, s.strategy, func(_ context.Context, i int) error {
		keep[i] = s.each(&solutions[i], scores[i])

		return nil
	})
	if err != nil {
		return nil, err
	}

	var selected []*S

	for i := range solutions {
		if keep[i] {
			selected = append(selected, &solutions[i])
		}
	}

	return selected, nil
}

// AllSelector selects every solution.
func AllSelector[S any]() Selector[S] {
	return PopulationSelector(func(solutions []S, _ []Scores) []*S {
		selected := make([]*S, len(solutions))
		for i := range solutions {
			selected[i] = &solutions[i]
		}

		return selected
	})
}

// FirstSelector selects the first n solutions in index order, or all of them
// if fewer than n exist. 'First' does not mean best.
func FirstSelector[S any](n int) Selector[S] {
	return PopulationSelector(func(solutions []S, _ []Scores) []*S {
		count := min(n, len(solutions))

		selected := make([]*S, count)
		for i := range count {
			selected[i] = &solutions[i]
		}

		return selected
	})
}

// RandomSelector selects n uniform samples without replacement, or all
// solutions if fewer than n exist.
func RandomSelector[S any](n int) Selector[S] {
	return PopulationSelector(func(solutions []S, _ []Scores) []*S {
		count := min(n, len(solutions))

		selected := make([]*S, 0, count)
		for _, i := range rand.Perm(len(solutions))[:count] {
			selected = append(selected, &solutions[i])
		}

		return selected
	})
}

// RouletteSelector selects n samples without replacement, weighted by the
// number of solutions each one dominates. The domination counts are computed
// on demand by pairwise comparison. When no solution dominates any other,
// falls back to uniform sampling.
func RouletteSelector[S any](n int) Selector[S] {
	return PopulationSelector(func(solutions []S, scores []Scores) []*S {
		weights, err := dominationCounts(scores)
		if err != nil {
			panic(err)
		}

		count := min(n, len(solutions))
		selected := make([]*S, 0, count)
		remaining := rand.Perm(len(solutions))

		for len(selected) < count {
			total := 0.0
			for _, i := range remaining {
				total += float64(weights[i])
			}

			// No dominations left to weight by, take uniformly.
			pick := 0

			if total > 0 {
				r := rand.Float64() * total
				sum := 0.0

				for at, i := range remaining {
					sum += float64(weights[i])
					if sum >= r {
						pick = at

						break
					}
				}
			}

			selected = append(selected, &solutions[remaining[pick]])
			remaining = slices.Delete(remaining, pick, pick+1)
		}

		return selected
	})
}

// dominationCounts computes, for every solution, the number of other
// solutions it dominates.
func dominationCounts(scores []Scores) ([]int, error) {
	counts := make([]int, len(scores))

	for i := range scores {
		for j := i + 1; j < len(scores); j++ {
			ord, err := Dominance(scores[i], scores[j])
			if err != nil {
				return nil, err
			}

			switch ord {
			case Dominates:
				counts[i]++
			case DominatedBy:
				counts[j]++
			}
		}
	}

	return counts, nil
}

// TournamentSelectorWithoutReplacement shuffles the population, splits it
// into chunks of size k and selects the least dominated solution of each of
// the first n chunks. Each solution can be selected at most once, so fewer
// than n solutions may be returned.
func TournamentSelectorWithoutReplacement[S any](n, k int) Selector[S] {
	if n < 1 || k < 1 {
		panic("moga: tournament selector requires n >= 1 and k >= 1")
	}

	return PopulationSelector(func(solutions []S, scores []Scores) []*S {
		indices := rand.Perm(len(solutions))

		var selected []*S

		for len(indices) > 0 && len(selected) < n {
			chunk := indices[:min(k, len(indices))]
			indices = indices[len(chunk):]

			winner, err := leastDominated(chunk, scores)
			if err != nil {
				panic(err)
			}

			selected = append(selected, &solutions[winner])
		}

		return selected
	})
}

// TournamentSelectorWithReplacement runs n independent tournament rounds.
// Each round samples min(k, population size) distinct solutions uniformly
// and selects the least dominated one; the same solution may win several
// rounds.
func TournamentSelectorWithReplacement[S any](n, k int) Selector[S] {
	if n < 1 || k < 1 {
		panic("moga: tournament selector requires n >= 1 and k >= 1")
	}

	return PopulationSelector(func(solutions []S, scores []Scores) []*S {
		if len(solutions) == 0 {
			return nil
		}

		selected := make([]*S, 0, n)

		for range n {
			chunk := rand.Perm(len(solutions))[:min(k, len(solutions))]

			winner, err := leastDominated(chunk, scores)
			if err != nil {
				panic(err)
			}

			selected = append(selected, &solutions[winner])
		}

		return selected
	})
}

// leastDominated returns the index from the chunk whose scores dominate the
// current best; on ties the earlier element in the chunk wins.
func leastDominated(chunk []int, scores []Scores) (int, error) {
	best := chunk[0]

	for _, i := range chunk[1:] {
		ord, err := Dominance(scores[i], scores[best])
		if err != nil {
			return 0, err
		}

		if ord == Dominates {
			best = i
		}
	}

	return best, nil
}

// BestSelector selects the n solutions with the smallest sum of absolute
// scores. This is the stock policy that does not use dominance ordering;
// ties keep the earlier solution first.
func BestSelector[S any](n int) Selector[S] {
	return PopulationSelector(func(solutions []S, scores []Scores) []*S {
		order := make([]int, len(solutions))
		for i := range order {
			order[i] = i
		}

		slices.SortStableFunc(order, func(a, b int) int {
			switch sa, sb := scoreMagnitude(scores[a]), scoreMagnitude(scores[b]); {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			default:
				return 0
			}
		})

		count := min(n, len(solutions))

		selected := make([]*S, count)
		for i := range count {
			selected[i] = &solutions[order[i]]
		}

		return selected
	})
}

// TournamentSelector shuffles the population, splits it into chunks of size
// k and selects the solution with the smallest sum of absolute scores from
// each chunk. Like TournamentSelectorWithoutReplacement, but ranked by score
// magnitude instead of dominance; a population of m solutions yields
// ceil(m/k) winners.
func TournamentSelector[S any](k int) Selector[S] {
	if k < 1 {
		panic("moga: tournament selector requires k >= 1")
	}

	return PopulationSelector(func(solutions []S, scores []Scores) []*S {
		indices := rand.Perm(len(solutions))

		var selected []*S

		for len(indices) > 0 {
			chunk := indices[:min(k, len(indices))]
			indices = indices[len(chunk):]

			best := chunk[0]
			for _, i := range chunk[1:] {
				if scoreMagnitude(scores[i]) < scoreMagnitude(scores[best]) {
					best = i
				}
			}

			selected = append(selected, &solutions[best])
		}

		return selected
	})
}

// scoreMagnitude is the L1 norm of a score vector, its distance from the
// all-zero ideal.
func scoreMagnitude(scores Scores) float64 {
	v := make([]float64, len(scores))
	for i, s := range scores {
		v[i] = float64(s)
	}

	return floats.Norm(v, 1)
}
