package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/collatzrng/internal/chaos"
	"github.com/san-kum/collatzrng/internal/rng"
)

func TestLogisticLyapunov(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		min, max float64
	}{
		{"fixed point", 2.8, -0.3, -0.15},
		{"period two", 3.2, -1.0, -0.8},
		{"generator rate", chaos.R, 0.58, 0.69},
		{"full chaos", 4.0, 0.65, 0.74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogisticLyapunov(tt.r, 0.3, 1000, 20000)
			if got < tt.min || got > tt.max {
				t.Errorf("lambda(%.2f) = %f, want in [%f, %f]", tt.r, got, tt.min, tt.max)
			}
		})
	}
}

func TestLyapunovSeparationAgreesInSign(t *testing.T) {
	if l := LyapunovSeparation(chaos.R, 0.3, 1e-9, 5000); l <= 0 {
		t.Errorf("expected positive exponent at r=%.2f, got %f", chaos.R, l)
	}
	if l := LyapunovSeparation(2.8, 0.3, 1e-9, 5000); l >= 0 {
		t.Errorf("expected negative exponent at r=2.8, got %f", l)
	}
}

func TestLyapunovSweep(t *testing.T) {
	pts := LyapunovSweep(3.0, 4.0, 11, 0.3, 200, 2000)
	if len(pts) != 11 {
		t.Fatalf("expected 11 points, got %d", len(pts))
	}
	if math.Abs(pts[0].X-3.0) > 1e-12 || math.Abs(pts[10].X-4.0) > 1e-12 {
		t.Errorf("sweep endpoints %f..%f", pts[0].X, pts[10].X)
	}
}

func TestBifurcationPeriods(t *testing.T) {
	data := Bifurcation(2.8, 3.2, 2, 0.3, 2000, 200)
	if len(data) != 2 {
		t.Fatalf("expected 2 points, got %d", len(data))
	}
	if n := len(data[0].Values); n != 1 {
		t.Errorf("r=2.8: expected a fixed point, got %d values", n)
	}
	if n := len(data[1].Values); n != 2 {
		t.Errorf("r=3.2: expected period two, got %d values", n)
	}

	chaotic := Bifurcation(chaos.R, chaos.R, 1, 0.3, 1000, 500)
	if n := len(chaotic[0].Values); n < 100 {
		t.Errorf("r=%.2f: expected many distinct values, got %d", chaos.R, n)
	}

	art := BifurcationToASCII(data, 20, 5)
	if strings.Count(art, "\n") != 5 {
		t.Errorf("expected 5 rows, got %q", art)
	}
}

func TestReturnMap(t *testing.T) {
	pts := ReturnMap(chaos.R, 0.3, 3)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if math.Abs(pts[0].Y-0.8379) > 1e-12 {
		t.Errorf("first image = %f, want 0.8379", pts[0].Y)
	}
	if pts[1].X != pts[0].Y {
		t.Error("consecutive pairs should chain")
	}
	if ScatterToASCII(pts, 10, 4) == "" {
		t.Error("expected a plot")
	}
}

func TestFFT(t *testing.T) {
	ps := PowerSpectrum([]float64{1, 1, 1, 1})
	if math.Abs(ps[0]-4) > 1e-12 || math.Abs(ps[1]) > 1e-12 {
		t.Errorf("constant signal spectrum = %v", ps)
	}
}

func TestBitSpectrum(t *testing.T) {
	bits := rng.ParseBits(strings.Repeat("1100", 16))
	ps := BitSpectrum(bits)
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	if peak != 16 {
		t.Errorf("expected the peak at bin 16, got %d", peak)
	}
	if PeakRatio(ps) < 10 {
		t.Errorf("periodic stream should have a dominant peak, ratio %f", PeakRatio(ps))
	}

	if got := len(BitSpectrum(make(rng.Bits, 100))); got != 64 {
		t.Errorf("expected padding to 128 samples, got %d bins", got)
	}
}

func TestNextPow2(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 100: 128, 1024: 1024} {
		if got := NextPow2(n); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", n, got, want)
		}
	}
}
