package stattest

import (
	"math"

	"github.com/san-kum/collatzrng/internal/rng"
)

// DefaultBlockSize is the block length of BlockChiSquare.
const DefaultBlockSize = 8

// Frequency compares the counts of ones and zeros against n/2. The p-value
// is the closed form exp(-chi/2).
func Frequency(bits rng.Bits) FrequencyResult {
	n := len(bits)
	if n == 0 {
		return FrequencyResult{Outcome: softError(KindFrequency, 0, "empty bit sequence")}
	}

	ones := bits.Ones()
	zeros := n - ones
	expected := float64(n) / 2

	chi := sq(float64(ones)-expected)/expected + sq(float64(zeros)-expected)/expected
	p := math.Exp(-chi / 2)

	return FrequencyResult{
		Outcome:    decide(KindFrequency, n, p),
		Ones:       ones,
		Zeros:      zeros,
		OnesRatio:  float64(ones) / float64(n),
		ZerosRatio: float64(zeros) / float64(n),
		Expected:   expected,
		ChiSquare:  chi,
	}
}

// Runs counts maximal runs of identical bits and scores them against the
// normal approximation.
func Runs(bits rng.Bits) RunsResult {
	n := len(bits)
	if n < 2 {
		return RunsResult{Outcome: softError(KindRuns, n, "insufficient bits")}
	}

	runs := 1
	for i := 1; i < n; i++ {
		if bit(bits[i]) != bit(bits[i-1]) {
			runs++
		}
	}

	n1 := bits.Ones()
	n0 := n - n1
	if n0 == 0 || n1 == 0 {
		return RunsResult{Outcome: softError(KindRuns, n, "all bits identical")}
	}

	fn := float64(n)
	prod := 2 * float64(n0) * float64(n1)
	expected := prod/fn + 1
	variance := prod * (prod - fn) / (fn * fn * (fn - 1))

	std := 1.0
	if variance > 0 {
		std = math.Sqrt(variance)
	}
	z := (float64(runs) - expected) / std
	p := 2 * (1 - NormalCDF(math.Abs(z)))

	return RunsResult{
		Outcome:      decide(KindRuns, n, p),
		Runs:         runs,
		ExpectedRuns: expected,
		StdDev:       std,
		ZScore:       z,
	}
}

// BlockChiSquare splits bits into non-overlapping blocks, histograms the
// ones count per block and compares it with the binomial expectation.
// blockSize <= 0 selects DefaultBlockSize. Trailing bits are ignored.
func BlockChiSquare(bits rng.Bits, blockSize int) BlockChiSquareResult {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	n := len(bits)
	if n < blockSize {
		return BlockChiSquareResult{
			Outcome:   softError(KindBlockChiSquare, n, "insufficient bits"),
			BlockSize: blockSize,
		}
	}

	blocks := n / blockSize
	observed := make([]int, blockSize+1)
	for i := 0; i < blocks; i++ {
		observed[bits[i*blockSize:(i+1)*blockSize].Ones()]++
	}

	expected := make([]float64, blockSize+1)
	half := math.Pow(0.5, float64(blockSize))
	for k := range expected {
		expected[k] = binomial(blockSize, k) * half * float64(blocks)
	}

	chi := 0.0
	for k, e := range expected {
		if e > 0 {
			chi += sq(float64(observed[k])-e) / e
		}
	}

	df := blockSize
	return BlockChiSquareResult{
		Outcome:          decide(KindBlockChiSquare, n, ChiSquarePValue(chi, df)),
		BlockSize:        blockSize,
		Blocks:           blocks,
		ChiSquare:        chi,
		DegreesOfFreedom: df,
		Observed:         observed,
		Expected:         expected,
	}
}

// Serial tallies the n-1 overlapping pairs (b[i], b[i+1]) and compares the
// four categories against (n-1)/4 with 3 degrees of freedom.
func Serial(bits rng.Bits) SerialResult {
	n := len(bits)
	if n < 2 {
		return SerialResult{Outcome: softError(KindSerial, n, "insufficient bits")}
	}

	var counts [4]int
	for i := 0; i < n-1; i++ {
		counts[2*bit(bits[i])+bit(bits[i+1])]++
	}

	pairs := n - 1
	expected := float64(pairs) / 4
	chi := 0.0
	for _, c := range counts {
		chi += sq(float64(c)-expected) / expected
	}

	return SerialResult{
		Outcome:   decide(KindSerial, n, ChiSquarePValue(chi, 3)),
		Pairs:     pairs,
		Counts:    counts,
		Expected:  expected,
		ChiSquare: chi,
	}
}

func bit(v uint8) int { return int(rng.Bit(v)) }

func sq(x float64) float64 { return x * x }

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}
