package moga

import (
	"errors"
	"math"
)

// Score is a single fitness value. The library always tries to move scores
// toward 0; -5.0 and 5.0 are equally distant from the ideal. Only absolute
// values are compared, so negating a score does not change how it ranks.
type Score = float32

// Scores is a fitness vector, one value per objective. All score vectors
// produced within a single optimizer run must share the same length.
type Scores = []Score

// Ordering is the outcome of a pairwise Pareto comparison.
type Ordering int

const (
	// Incomparable means neither vector dominates the other (including the
	// case where they are equal, or either is empty).
	Incomparable Ordering = iota
	// Dominates means the first vector dominates the second.
	Dominates
	// DominatedBy means the second vector dominates the first.
	DominatedBy
)

// ErrNaNEncountered is returned whenever a dominance comparison touches a
// NaN absolute value. The library never silently orders NaN.
var ErrNaNEncountered = errors.New("moga: NaN encountered in score comparison")

// Dominance compares two score vectors under the "target = 0" convention: a
// dominates b iff every |a[i]| <= |b[i]| and at least one is strictly less.
//
// The vectors are scanned left to right. The first coordinate whose absolute
// values differ sets the tentative result; a later coordinate disagreeing
// with that tentative result makes the pair incomparable immediately. Equal
// absolute values never change the tentative result. a and b must have equal
// length; callers within this module always satisfy that via the alignment
// invariant.
func Dominance(a, b Scores) (Ordering, error) {
	ord := Incomparable

	for i := range a {
		av, bv := math.Abs(float64(a[i])), math.Abs(float64(b[i]))
		if math.IsNaN(av) || math.IsNaN(bv) {
			return Incomparable, ErrNaNEncountered
		}

		var next Ordering

		switch {
		case av < bv:
			next = Dominates
		case av > bv:
			next = DominatedBy
		default:
			continue
		}

		switch ord {
		case Incomparable:
			ord = next
		case next:
			// same direction so far, keep scanning
		default:
			return Incomparable, nil
		}
	}

	return ord, nil
}
