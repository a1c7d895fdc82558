// Package spea2 implements the SPEA-II elitist multi-objective evolutionary
// engine: strength-based raw fitness with k-th nearest-neighbor density, an
// external archive of bounded size carried across generations, and a final
// non-dominated extraction of the archive.
package spea2

import (
	"context"

	"github.com/tommoulard/moga"
)

// Optimizer carries the working population and the external archive between
// generations and drives the five operator stages.
type Optimizer[S any] struct {
	population    []S
	archive       []S
	archiveScores []moga.Scores
	archiveSize   int

	tester       moga.Tester[S]
	selector     moga.Selector[S]
	recombinator moga.Recombinator[S]
	mutator      moga.Mutator[S]
	terminator   moga.Terminator[S]
}

// New builds a SPEA-II optimizer from the initial population, the archive
// capacity and the five operator stages. Panics when the population is empty
// or archiveSize < 1.
func New[S any](
	population []S,
	archiveSize int,
	tester moga.Tester[S],
	selector moga.Selector[S],
	recombinator moga.Recombinator[S],
	mutator moga.Mutator[S],
	terminator moga.Terminator[S],
) *Optimizer[S] {
	if len(population) == 0 {
		panic("spea2: initial population is empty")
	}

	if archiveSize < 1 {
		panic("spea2: archive size must be at least 1")
	}

	return &Optimizer[S]{
		population:   population,
		archiveSize:  archiveSize,
		tester:       tester,
		selector:     selector,
		recombinator: recombinator,
		mutator:      mutator,
		terminator:   terminator,
	}
}

// Optimize consumes the optimizer and runs the generational loop until the
// terminator fires, then returns the non-dominated members of the final
// archive. Runtime contract violations surface as typed errors:
// ErrPopulationEmpty when a generation starts with no solutions, and
// moga.ScoreCountMismatchError when the test operator breaks the alignment
// contract. NaN in a score comparison aborts the run with
// moga.ErrNaNEncountered.
func (o *Optimizer[S]) Optimize(ctx context.Context) ([]S, error) {
	for {
		if len(o.population) == 0 {
			return nil, ErrPopulationEmpty
		}

		scores, err := o.tester.Test(ctx, o.population)
		if err != nil {
			return nil, err
		}

		if len(scores) != len(o.population) {
			return nil, moga.ScoreCountMismatchError{Actual: len(scores), Expected: len(o.population)}
		}

		o.archive = append(o.archive, o.population...)
		o.archiveScores = append(o.archiveScores, scores...)

		stop, err := o.terminator.Terminate(ctx, o.archive, o.archiveScores)
		if err != nil {
			return nil, err
		}

		if stop {
			break
		}

		if err := o.environmentalSelection(); err != nil {
			return nil, err
		}

		parents, err := o.selector.Select(ctx, o.archive, o.archiveScores)
		if err != nil {
			return nil, err
		}

		offspring, err := o.recombinator.Recombine(ctx, parents)
		if err != nil {
			return nil, err
		}

		if err := o.mutator.Mutate(ctx, offspring); err != nil {
			return nil, err
		}

		o.population = offspring
	}

	return o.extractNonDominated()
}

// extractNonDominated filters the final archive down to its pairwise
// incomparable members.
func (o *Optimizer[S]) extractNonDominated() ([]S, error) {
	alive := make([]bool, len(o.archive))
	for i := range alive {
		alive[i] = true
	}

	for i := range o.archive {
		if !alive[i] {
			continue
		}

		for j := i + 1; j < len(o.archive); j++ {
			if !alive[j] {
				continue
			}

			ord, err := moga.Dominance(o.archiveScores[i], o.archiveScores[j])
			if err != nil {
				return nil, err
			}

			switch ord {
			case moga.Dominates:
				alive[j] = false
			case moga.DominatedBy:
				alive[i] = false
			}

			if !alive[i] {
				break
			}
		}
	}

	var solutions []S

	for i, keep := range alive {
		if keep {
			solutions = append(solutions, o.archive[i])
		}
	}

	return solutions, nil
}
