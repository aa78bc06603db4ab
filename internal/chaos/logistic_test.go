package chaos

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/collatzrng/internal/rng"
)

func TestLogistic_KnownOrbit(t *testing.T) {
	l, err := New(0.3)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.8379, 0.5419361241000001, 0.9904830323669228}
	for i, w := range want {
		if got := l.Step(); math.Abs(got-w) > 1e-15 {
			t.Errorf("step %d: got %.17g, want %.17g", i+1, got, w)
		}
	}
}

func TestFromSeed(t *testing.T) {
	l, err := FromSeed(12345)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(l.Initial()-0.38238238238238237) > 1e-17 {
		t.Errorf("x0 = %.17g", l.Initial())
	}

	got := l.Bits(32).String()
	if got != "10110100110101000110101101110111" {
		t.Errorf("bits = %s", got)
	}
}

func TestFromSeed_InvalidSeed(t *testing.T) {
	if _, err := FromSeed(0); !errors.Is(err, rng.ErrInvalidSeed) {
		t.Errorf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestNew_Clamps(t *testing.T) {
	tests := []struct {
		x0   float64
		want float64
	}{
		{-1, MinX},
		{0, MinX},
		{0.5, 0.5},
		{1, MaxX},
		{42, MaxX},
	}

	for _, tt := range tests {
		l, err := New(tt.x0)
		if err != nil {
			t.Fatal(err)
		}
		if l.X() != tt.want {
			t.Errorf("New(%v).X() = %v, want %v", tt.x0, l.X(), tt.want)
		}
	}
}

func TestNew_RejectsNaN(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := New(x); !errors.Is(err, rng.ErrInvalidState) {
			t.Errorf("New(%v): expected ErrInvalidState, got %v", x, err)
		}
	}
}

func TestLogistic_Reset(t *testing.T) {
	l, _ := FromSeed(777)
	first := l.Bits(64)

	l.Reset()
	if l.Steps() != 0 || l.X() != l.Initial() {
		t.Fatal("reset did not restore initial state")
	}

	if again := l.Bits(64); again.String() != first.String() {
		t.Error("reset stream differs from the first pass")
	}
}

func TestLogistic_StaysInUnitInterval(t *testing.T) {
	l, _ := FromSeed(99991)
	for i, x := range l.Orbit(100000) {
		if x <= 0 || x >= 1 {
			t.Fatalf("step %d left (0,1): %v", i, x)
		}
	}
}

func TestRateAboveChaosThreshold(t *testing.T) {
	if R <= ChaosThreshold {
		t.Errorf("R = %v must exceed %v", R, ChaosThreshold)
	}
}
