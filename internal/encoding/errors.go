package encoding

import (
	"fmt"

	"github.com/san-kum/collatzrng/internal/rng"
)

// HexError locates the first non-hex character of an input.
type HexError struct {
	Offset int
	Char   byte
}

func (e *HexError) Error() string {
	return fmt.Sprintf("%s %q at offset %d", rng.ErrInvalidHex.Error(), e.Char, e.Offset)
}

func (e *HexError) Unwrap() error {
	return rng.ErrInvalidHex
}
