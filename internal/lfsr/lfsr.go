// Package lfsr implements the 16-bit fixed-tap shift register stream.
package lfsr

import "github.com/san-kum/collatzrng/internal/rng"

// Taps are the 0-indexed register positions XORed into the feedback bit.
var Taps = [4]uint{15, 13, 12, 10}

// windowMask covers bits 10..15, the only bits the feedback reads.
const windowMask uint16 = 0xFC00

// Register is a right-shifting register that feeds back into bit 15.
type Register struct {
	state uint16
	steps uint64
}

// New builds a register from a sub-seed. A zero seed is forced to 1.
func New(seed uint16) *Register {
	if seed == 0 {
		seed = 1
	}
	return &Register{state: seed}
}

// NextBit emits the current least significant bit, then shifts right and
// inserts the XOR of the tapped bits at the top.
func (r *Register) NextBit() uint8 {
	var feedback uint16
	for _, tap := range Taps {
		feedback ^= (r.state >> tap) & 1
	}

	out := uint8(r.state & 1)
	r.state = r.state>>1 | feedback<<15
	r.steps++
	return out
}

// Bits emits n bits.
func (r *Register) Bits(n int) rng.Bits {
	return rng.Take(r, n)
}

func (r *Register) State() uint16 { return r.state }
func (r *Register) Steps() uint64 { return r.steps }

// Collapses reports whether a register seeded with seed decays to the
// all-zero state. The feedback depends only on bits 10..15, so when none of
// them is set every inserted bit is zero and the low bits drain out within
// ten steps. Any seed with a tap-window bit set stays non-zero forever.
func Collapses(seed uint16) bool {
	if seed == 0 {
		seed = 1
	}
	return seed&windowMask == 0
}

var _ rng.BitSource = (*Register)(nil)
