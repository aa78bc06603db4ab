package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/rng"
)

func TestOnesRatioAndBalance(t *testing.T) {
	ones := NewOnesRatio()
	bal := NewBalance()
	ms := []rng.Metric{ones, bal}

	ObserveAll(ms, nil, rng.ParseBits("1110"))
	ObserveAll(ms, nil, rng.ParseBits("0000"))

	if math.Abs(ones.Value()-0.375) > 1e-12 {
		t.Errorf("expected ones ratio 0.375, got %f", ones.Value())
	}
	if math.Abs(bal.Value()-0.25) > 1e-12 {
		t.Errorf("expected balance 0.25, got %f", bal.Value())
	}

	ResetAll(ms)
	if ones.Value() != 0 || bal.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSurvival(t *testing.T) {
	s := NewSurvival()
	if s.Value() != 0 {
		t.Error("expected zero before any observation")
	}

	s.Observe(make(rng.Bits, 12), make(rng.Bits, 3))
	if math.Abs(s.Value()-0.25) > 1e-12 {
		t.Errorf("expected survival 0.25, got %f", s.Value())
	}
}

func TestRawBias(t *testing.T) {
	r := NewRawBias()
	r.Observe(rng.ParseBits("11110000"), nil)
	if r.Value() != 0 {
		t.Errorf("expected no bias, got %f", r.Value())
	}
	r.Observe(rng.ParseBits("00000000"), nil)
	if math.Abs(r.Value()-0.25) > 1e-12 {
		t.Errorf("expected bias 0.25, got %f", r.Value())
	}
}

func TestMaxImbalance(t *testing.T) {
	m := NewMaxImbalance()
	m.Observe(nil, rng.ParseBits("10"))
	m.Observe(nil, rng.ParseBits("1110"))
	m.Observe(nil, rng.Bits{})
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected max imbalance 0.5, got %f", m.Value())
	}
}

func TestGeneratorMetrics(t *testing.T) {
	ms := Default()
	g, err := generator.New(12345, generator.WithMetrics(ms...))
	if err != nil {
		t.Fatal(err)
	}
	bits, err := g.BalancedBits(1000)
	if err != nil {
		t.Fatal(err)
	}

	snap := Snapshot(ms)
	if len(snap) != len(ms) {
		t.Fatalf("expected %d metrics, got %d", len(ms), len(snap))
	}

	surv := snap["survival"]
	if surv <= 0.1 || surv >= 0.5 {
		t.Errorf("survival %f outside the plausible range", surv)
	}

	// Metrics see every extracted bit, including the surplus of the last round.
	raw, _ := g.Counts()
	if math.Abs(surv*float64(raw)) < float64(len(bits)) {
		t.Errorf("survival %f too low for %d bits from %d raw", surv, len(bits), raw)
	}
}
