// Package testutil holds the benchmark problems shared by the engine tests:
// Schaffer's problem No. 1 and the Binh and Korn function, both with known
// Pareto frontiers.
package testutil

import "github.com/tommoulard/moga"

// SchafferPopulation is the canonical initial population for Schaffer's
// problem No. 1: 0.0 to 99.0 step 1.0. Its Pareto set is [0, 2].
func SchafferPopulation() []float64 {
	population := make([]float64, 100)
	for i := range population {
		population[i] = float64(i)
	}

	return population
}

// SchafferTester evaluates f1(x) = x^2 and f2(x) = (x-2)^2.
func SchafferTester() moga.Tester[float64] {
	return moga.ObjectiveTester(
		func(x *float64) moga.Score { return moga.Score(*x * *x) },
		func(x *float64) moga.Score { return moga.Score((*x - 2) * (*x - 2)) },
	)
}

// Point is a two-dimensional solution for the Binh and Korn problem.
type Point struct {
	X, Y float64
}

// BinhKornPopulation is the canonical initial population for the Binh and
// Korn problem: (i, i) for i in 0..100.
func BinhKornPopulation() []Point {
	population := make([]Point, 100)
	for i := range population {
		population[i] = Point{X: float64(i), Y: float64(i)}
	}

	return population
}

// BinhKornTester evaluates f1(x, y) = 4x^2 + 4y^2 and
// f2(x, y) = (x-5)^2 + (y-5)^2.
func BinhKornTester() moga.Tester[Point] {
	return moga.TesterFunc(func(p *Point) moga.Scores {
		return moga.Scores{
			moga.Score(4*p.X*p.X + 4*p.Y*p.Y),
			moga.Score((p.X-5)*(p.X-5) + (p.Y-5)*(p.Y-5)),
		}
	})
}
