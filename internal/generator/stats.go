package generator

import "github.com/san-kum/collatzrng/internal/rng"

// Stats summarizes a balanced output.
type Stats struct {
	Total      int     `json:"total_bits" yaml:"total_bits"`
	Ones       int     `json:"ones" yaml:"ones"`
	Zeros      int     `json:"zeros" yaml:"zeros"`
	OnesRatio  float64 `json:"ones_ratio" yaml:"ones_ratio"`
	ZerosRatio float64 `json:"zeros_ratio" yaml:"zeros_ratio"`
	Balance    float64 `json:"balance" yaml:"balance"`
}

// Stats describes the most recent BalancedBits output. It is the zero value
// before any output.
func (g *Generator) Stats() Stats {
	return Summarize(g.last)
}

// Summarize computes Stats for any sequence. Balance is |ones-zeros|/total.
func Summarize(bits rng.Bits) Stats {
	total := len(bits)
	if total == 0 {
		return Stats{}
	}

	ones := bits.Ones()
	zeros := total - ones
	diff := ones - zeros
	if diff < 0 {
		diff = -diff
	}

	return Stats{
		Total:      total,
		Ones:       ones,
		Zeros:      zeros,
		OnesRatio:  float64(ones) / float64(total),
		ZerosRatio: float64(zeros) / float64(total),
		Balance:    float64(diff) / float64(total),
	}
}
