package rng

import (
	"errors"
	"testing"
)

func TestBits_Counts(t *testing.T) {
	tests := []struct {
		name  string
		bits  Bits
		ones  int
		zeros int
	}{
		{"empty", Bits{}, 0, 0},
		{"all zeros", Bits{0, 0, 0}, 0, 3},
		{"mixed", Bits{1, 0, 1, 1}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bits.Ones(); got != tt.ones {
				t.Errorf("Ones() = %d, want %d", got, tt.ones)
			}
			if got := tt.bits.Zeros(); got != tt.zeros {
				t.Errorf("Zeros() = %d, want %d", got, tt.zeros)
			}
		})
	}
}

func TestBits_Xor(t *testing.T) {
	a := Bits{1, 0, 1, 0, 1}
	b := Bits{1, 1, 0, 0}

	got := a.Xor(b)
	if got.String() != "0110" {
		t.Errorf("Xor = %s, want 0110", got)
	}
}

func TestBits_NonBinaryElements(t *testing.T) {
	b := Bits{2, 0, 3, 4}

	if got := b.Ones(); got != 3 {
		t.Errorf("Ones() = %d, want 3", got)
	}
	if got := b.String(); got != "1011" {
		t.Errorf("String() = %s, want 1011", got)
	}
	if got := b.Xor(Bits{1, 0, 0, 1}).String(); got != "0010" {
		t.Errorf("Xor = %s, want 0010", got)
	}
	for v, want := range map[uint8]uint8{0: 0, 1: 1, 2: 1, 255: 1} {
		if got := Bit(v); got != want {
			t.Errorf("Bit(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestParseBits(t *testing.T) {
	got := ParseBits("01 10x1")
	if got.String() != "01101" {
		t.Errorf("ParseBits = %s, want 01101", got)
	}
}

type alternating struct{ next uint8 }

func (a *alternating) NextBit() uint8 {
	b := a.next
	a.next ^= 1
	return b
}

func TestTake(t *testing.T) {
	got := Take(&alternating{}, 5)
	if got.String() != "01010" {
		t.Errorf("Take = %s, want 01010", got)
	}
	if len(Take(&alternating{}, 0)) != 0 {
		t.Error("Take(0) should be empty")
	}
}

func TestCheckSeed(t *testing.T) {
	for _, seed := range []int64{0, -1, -12345} {
		err := CheckSeed(seed)
		if !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("CheckSeed(%d) = %v, want ErrInvalidSeed", seed, err)
		}
		var se *SeedError
		if !errors.As(err, &se) || se.Seed != seed {
			t.Errorf("CheckSeed(%d) did not carry the seed", seed)
		}
	}
	if err := CheckSeed(1); err != nil {
		t.Errorf("CheckSeed(1) = %v, want nil", err)
	}
}

func TestExhaustedError(t *testing.T) {
	err := error(&ExhaustedError{Seed: 7, Requested: 10, Produced: 3, Rounds: 4})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Error("ExhaustedError should unwrap to ErrGenerationExhausted")
	}
	want := "rng: balanced generation exhausted retry budget: seed 7 produced 3/10 bits in 4 rounds"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
