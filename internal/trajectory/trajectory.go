// Package trajectory derives parity bits from the 3n+1 integer trajectory of
// a seed and folds them into a 16-bit LFSR sub-seed.
package trajectory

import (
	"math/big"

	"github.com/san-kum/collatzrng/internal/rng"
)

// DefaultMaxSteps bounds every trajectory. The cap guarantees termination
// whether or not the trajectory would reach 1.
const DefaultMaxSteps = 1000

// SubSeedBits is the number of parity bits folded into the LFSR sub-seed.
const SubSeedBits = 16

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// Map holds the state of one trajectory walk. Values are arbitrary precision
// so 3n+1 cannot overflow for any int64 seed.
type Map struct {
	seed     int64
	maxSteps int
	n        *big.Int
	values   []*big.Int
	parity   rng.Bits
	steps    int
}

// New creates a trajectory rooted at seed. maxSteps <= 0 selects
// DefaultMaxSteps. The parity of the seed itself is recorded before any step.
func New(seed int64, maxSteps int) (*Map, error) {
	if err := rng.CheckSeed(seed); err != nil {
		return nil, err
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	n := big.NewInt(seed)
	return &Map{
		seed:     seed,
		maxSteps: maxSteps,
		n:        n,
		values:   []*big.Int{new(big.Int).Set(n)},
		parity:   rng.Bits{uint8(n.Bit(0))},
	}, nil
}

// Step applies one halve-or-triple-plus-one move. It returns false without
// moving when the walk is terminal.
func (m *Map) Step() bool {
	if m.Done() {
		return false
	}

	if m.n.Bit(0) == 0 {
		m.n.Rsh(m.n, 1)
	} else {
		m.n.Mul(m.n, three)
		m.n.Add(m.n, one)
	}

	m.values = append(m.values, new(big.Int).Set(m.n))
	m.parity = append(m.parity, uint8(m.n.Bit(0)))
	m.steps++
	return true
}

// Run steps until the walk reaches 1 or the step cap.
func (m *Map) Run() *Map {
	for m.Step() {
	}
	return m
}

// Done reports whether the walk reached 1 or exhausted its step cap.
func (m *Map) Done() bool {
	return m.n.Cmp(one) == 0 || m.steps >= m.maxSteps
}

// ReachedOne reports whether the walk ended at 1 rather than at the cap.
func (m *Map) ReachedOne() bool {
	return m.n.Cmp(one) == 0
}

func (m *Map) Seed() int64   { return m.seed }
func (m *Map) Steps() int    { return m.steps }
func (m *Map) MaxSteps() int { return m.maxSteps }

// Current returns a copy of the current value.
func (m *Map) Current() *big.Int {
	return new(big.Int).Set(m.n)
}

// Values returns the visited values, seed first.
func (m *Map) Values() []*big.Int {
	out := make([]*big.Int, len(m.values))
	for i, v := range m.values {
		out[i] = new(big.Int).Set(v)
	}
	return out
}

// Parity returns the parity bits, one per visited value (steps+1 bits).
func (m *Map) Parity() rng.Bits {
	return m.parity.Clone()
}

// SubSeed folds the first 16 parity bits of a fully walked trajectory into
// a non-zero 16-bit LFSR seed.
func (m *Map) SubSeed() uint16 {
	return SubSeed(m.parity)
}

// SubSeed interprets bits[i] as bit position i (LSB first) of a 16-bit
// integer. Missing bits are zero; a zero result is forced to 1.
func SubSeed(bits rng.Bits) uint16 {
	var seed uint16
	for i := 0; i < SubSeedBits && i < len(bits); i++ {
		if bits[i] != 0 {
			seed |= 1 << uint(i)
		}
	}
	if seed == 0 {
		return 1
	}
	return seed
}

// Walk builds and fully runs a trajectory.
func Walk(seed int64, maxSteps int) (*Map, error) {
	m, err := New(seed, maxSteps)
	if err != nil {
		return nil, err
	}
	return m.Run(), nil
}
