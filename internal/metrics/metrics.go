// Package metrics holds streaming observers of the generator's extraction
// rounds.
package metrics

import "github.com/san-kum/collatzrng/internal/rng"

// Default returns one fresh instance of every metric.
func Default() []rng.Metric {
	return []rng.Metric{
		NewOnesRatio(),
		NewBalance(),
		NewSurvival(),
		NewRawBias(),
		NewMaxImbalance(),
	}
}

// ObserveAll feeds one round to every metric.
func ObserveAll(ms []rng.Metric, raw, extracted rng.Bits) {
	for _, m := range ms {
		m.Observe(raw, extracted)
	}
}

// Snapshot returns the current value of each metric keyed by name.
func Snapshot(ms []rng.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// ResetAll resets every metric.
func ResetAll(ms []rng.Metric) {
	for _, m := range ms {
		m.Reset()
	}
}
