package rng

import "strings"

// Bits is an ordered sequence of 0/1 values. Every consumer reads elements
// through Bit, so any non-zero element is a 1.
type Bits []uint8

// Bit normalizes one element to 0 or 1.
func Bit(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}

func (b Bits) Clone() Bits {
	c := make(Bits, len(b))
	copy(c, b)
	return c
}

// Ones returns the number of set bits.
func (b Bits) Ones() int {
	n := 0
	for _, v := range b {
		n += int(Bit(v))
	}
	return n
}

// Zeros returns len(b) - Ones().
func (b Bits) Zeros() int {
	return len(b) - b.Ones()
}

// Xor combines two sequences pairwise, truncating to the shorter one.
func (b Bits) Xor(other Bits) Bits {
	n := len(b)
	if len(other) < n {
		n = len(other)
	}
	out := make(Bits, n)
	for i := 0; i < n; i++ {
		out[i] = Bit(b[i]) ^ Bit(other[i])
	}
	return out
}

// String renders the sequence as a run of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + Bit(v))
	}
	return sb.String()
}

// ParseBits converts a '0'/'1' string into Bits. Other characters are
// skipped so grouped input like "0101 1100" parses.
func ParseBits(s string) Bits {
	out := make(Bits, 0, len(s))
	for _, c := range s {
		switch c {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		}
	}
	return out
}

// BitSource produces one bit per call.
type BitSource interface {
	NextBit() uint8
}

// Take pulls n bits from src.
func Take(src BitSource, n int) Bits {
	if n <= 0 {
		return Bits{}
	}
	out := make(Bits, n)
	for i := range out {
		out[i] = src.NextBit()
	}
	return out
}

// Metric accumulates a scalar over generator rounds. Each round reports the
// raw XOR bits it drew and the bits that survived extraction.
type Metric interface {
	Name() string
	Observe(raw, extracted Bits)
	Value() float64
	Reset()
}
