// Package nsga2 implements the NSGA-II elitist multi-objective evolutionary
// engine: a generational loop with fast non-dominated sorting and
// crowding-distance truncation. The population size is preserved across
// generations.
package nsga2

import (
	"context"

	"github.com/tommoulard/moga"
)

// Optimizer carries the working population between generations and drives
// the five operator stages.
type Optimizer[S any] struct {
	population  []S
	scores      []moga.Scores
	initialSize int

	tester       moga.Tester[S]
	selector     moga.Selector[S]
	recombinator moga.Recombinator[S]
	mutator      moga.Mutator[S]
	terminator   moga.Terminator[S]
}

// New builds an NSGA-II optimizer from the initial population and the five
// operator stages. Panics when the population is empty.
func New[S any](
	population []S,
	tester moga.Tester[S],
	selector moga.Selector[S],
	recombinator moga.Recombinator[S],
	mutator moga.Mutator[S],
	terminator moga.Terminator[S],
) *Optimizer[S] {
	if len(population) == 0 {
		panic("nsga2: initial population is empty")
	}

	return &Optimizer[S]{
		population:   population,
		initialSize:  len(population),
		tester:       tester,
		selector:     selector,
		recombinator: recombinator,
		mutator:      mutator,
		terminator:   terminator,
	}
}

// Optimize consumes the optimizer and runs the generational loop until the
// terminator fires, then returns the final population. After at least one
// generation it is ordered by front and crowding distance, with the best
// individual at index 0; when the loop stops before the first generation,
// the initial population is returned in its original order. Contract
// violations at runtime (NaN in a score
// comparison, wrong score count from the tester) panic; cancelling ctx
// returns the population found so far.
func (o *Optimizer[S]) Optimize(ctx context.Context) []S {
	o.scores = o.evaluate(ctx, o.population)
	if o.scores == nil {
		return o.population
	}

	for {
		stop, err := o.terminator.Terminate(ctx, o.population, o.scores)
		if o.failed(ctx, err) || stop {
			return o.population
		}

		parents, err := o.selector.Select(ctx, o.population, o.scores)
		if o.failed(ctx, err) {
			return o.population
		}

		offspring, err := o.recombinator.Recombine(ctx, parents)
		if o.failed(ctx, err) {
			return o.population
		}

		if err := o.mutator.Mutate(ctx, offspring); o.failed(ctx, err) {
			return o.population
		}

		offspringScores := o.evaluate(ctx, offspring)
		if offspringScores == nil && len(offspring) > 0 {
			return o.population
		}

		o.population = append(o.population, offspring...)
		o.scores = append(o.scores, offspringScores...)

		o.truncate()
	}
}

// evaluate runs the test stage and enforces the score count contract. A nil
// return (for a non-empty input) means ctx was cancelled.
func (o *Optimizer[S]) evaluate(ctx context.Context, solutions []S) []moga.Scores {
	scores, err := o.tester.Test(ctx, solutions)
	if o.failed(ctx, err) {
		return nil
	}

	if len(scores) != len(solutions) {
		panic(moga.ScoreCountMismatchError{Actual: len(scores), Expected: len(solutions)})
	}

	return scores
}

// failed panics on operator errors, except cancellation, which makes
// Optimize return the best population found so far.
func (o *Optimizer[S]) failed(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if ctx.Err() != nil {
		return true
	}

	panic(err)
}

// truncate shrinks the combined parent and offspring population back to the
// initial population size by fast non-dominated sorting with
// crowding-distance selection on the last front.
func (o *Optimizer[S]) truncate() {
	survivors := selectSurvivors(o.scores, o.initialSize)

	population := make([]S, len(survivors))
	scores := make([]moga.Scores, len(survivors))

	for at, m := range survivors {
		population[at] = o.population[m.index]
		scores[at] = o.scores[m.index]
	}

	o.population = population
	o.scores = scores
}
