package metrics

import "github.com/san-kum/collatzrng/internal/rng"

// Balance is |ones - zeros| / total over all extracted bits.
type Balance struct {
	name  string
	ones  int
	total int
}

func NewBalance() *Balance {
	return &Balance{name: "balance"}
}

func (b *Balance) Name() string { return b.name }

func (b *Balance) Observe(raw, extracted rng.Bits) {
	b.ones += extracted.Ones()
	b.total += len(extracted)
}

func (b *Balance) Value() float64 {
	if b.total == 0 {
		return 0
	}
	d := 2*b.ones - b.total
	if d < 0 {
		d = -d
	}
	return float64(d) / float64(b.total)
}

func (b *Balance) Reset() {
	b.ones = 0
	b.total = 0
}

// MaxImbalance tracks the worst per-round balance seen.
type MaxImbalance struct {
	name    string
	max     float64
	samples int
}

func NewMaxImbalance() *MaxImbalance {
	return &MaxImbalance{name: "max_imbalance"}
}

func (m *MaxImbalance) Name() string { return m.name }

func (m *MaxImbalance) Observe(raw, extracted rng.Bits) {
	if len(extracted) == 0 {
		return
	}
	d := 2*extracted.Ones() - len(extracted)
	if d < 0 {
		d = -d
	}
	if v := float64(d) / float64(len(extracted)); v > m.max {
		m.max = v
	}
	m.samples++
}

func (m *MaxImbalance) Value() float64 {
	return m.max
}

func (m *MaxImbalance) Reset() {
	m.max = 0
	m.samples = 0
}
