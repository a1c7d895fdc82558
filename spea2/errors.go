package spea2

import "errors"

// ErrPopulationEmpty reports a working population that became empty at the
// start of a generation, usually because selection or recombination produced
// no offspring.
var ErrPopulationEmpty = errors.New("spea2: population is empty")
