// Package rng provides the shared primitives of the collatzrng bit pipeline.
//
// The pipeline composes three weak entropy sources and debiases the result:
//
//   - trajectory: integer parity bits seed the LFSR
//   - lfsr: 16-bit fixed-tap shift register
//   - chaos: logistic map thresholded at 0.5
//   - extract: pairwise (von Neumann) bias extraction
//   - generator: XOR combination with a bounded retry loop
//
// This package defines the [Bits] sequence type, the [BitSource] interface
// implemented by every stream, and the domain errors returned at API
// boundaries.
//
// # Security
//
// The generator is a teaching tool. Its output is not cryptographically
// secure and the stream cipher built on it must not protect real data.
//
// # Thread Safety
//
// Sources and generators are NOT thread-safe. Construct one generator per
// goroutine; generators built from different seeds share no state.
package rng
