package rng

import (
	"errors"
	"fmt"
)

// Domain errors for generator construction and use.
var (
	// ErrInvalidSeed indicates a seed that is not a positive integer.
	ErrInvalidSeed = errors.New("rng: seed must be a positive integer")

	// ErrGenerationExhausted indicates the balanced-bit loop hit its round cap.
	ErrGenerationExhausted = errors.New("rng: balanced generation exhausted retry budget")

	// ErrInvalidHex indicates a ciphertext containing non-hex characters.
	ErrInvalidHex = errors.New("rng: invalid hex digit")

	// ErrInvalidState indicates a NaN or Inf chaotic map value.
	ErrInvalidState = errors.New("rng: invalid chaotic state (NaN or Inf)")
)

// SeedError reports the rejected seed.
type SeedError struct {
	Seed int64
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("%s: got %d", ErrInvalidSeed.Error(), e.Seed)
}

func (e *SeedError) Unwrap() error {
	return ErrInvalidSeed
}

// ExhaustedError records how far a balanced-bit request got before the
// round cap was reached.
type ExhaustedError struct {
	Seed      int64
	Requested int
	Produced  int
	Rounds    int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: seed %d produced %d/%d bits in %d rounds",
		ErrGenerationExhausted.Error(), e.Seed, e.Produced, e.Requested, e.Rounds)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}

// CheckSeed returns a *SeedError when seed is not positive.
func CheckSeed(seed int64) error {
	if seed <= 0 {
		return &SeedError{Seed: seed}
	}
	return nil
}
