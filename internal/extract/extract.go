// Package extract implements pairwise (von Neumann) bias extraction.
package extract

import "github.com/san-kum/collatzrng/internal/rng"

// VonNeumann scans non-overlapping pairs: 01 emits 0, 10 emits 1, 00 and 11
// emit nothing. A trailing unpaired bit is dropped.
func VonNeumann(bits rng.Bits) rng.Bits {
	out := make(rng.Bits, 0, len(bits)/4)
	return Append(out, bits)
}

// Append extracts from bits and appends the survivors to dst.
func Append(dst, bits rng.Bits) rng.Bits {
	for i := 0; i+1 < len(bits); i += 2 {
		a, b := rng.Bit(bits[i]), rng.Bit(bits[i+1])
		if a != b {
			dst = append(dst, a)
		}
	}
	return dst
}

// Survival returns the fraction of pairs in bits that produced output.
func Survival(bits rng.Bits) float64 {
	pairs := len(bits) / 2
	if pairs == 0 {
		return 0
	}
	return float64(len(VonNeumann(bits))) / float64(pairs)
}
