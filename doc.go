// Package moga provides the shared building blocks of a multi-objective
// evolutionary optimization pipeline: fitness score vectors, Pareto
// dominance, and the five user-supplied operator stages (test, selection,
// recombination, mutation, termination) that the nsga2 and spea2 engines
// drive.
//
// The library does not ship concrete recombination formulas, mutation
// distributions, or constraint-handling policies beyond the stock selectors
// and the generation-counting terminator below. Callers wanting constrained
// optimization can fold a violation score into an extra objective via their
// own Tester; this package does not mandate or provide one.
package moga
