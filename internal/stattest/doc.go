// Package stattest implements a small battery of randomness tests over bit
// sequences: frequency (monobit), runs, block chi-square and overlapping
// serial pairs.
//
// Tests never return Go errors. Input too short for a test yields a result
// whose Outcome.Err is set; such a result never passes and is counted as a
// failure by Score.
//
// The chi-square p-values come from ChiSquarePValue, a deliberately coarse
// incomplete-gamma series. Results are comparable across runs of this
// package, not with textbook tables.
package stattest
