package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/collatzrng/internal/rng"
)

// FFT is a radix-2 transform. len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitudes of the first half of the FFT.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// BitSpectrum maps bits to ±1, zero-pads to a power of two and returns the
// power spectrum. A flat spectrum means no periodic structure.
func BitSpectrum(bits rng.Bits) []float64 {
	if len(bits) == 0 {
		return nil
	}
	data := make([]float64, NextPow2(len(bits)))
	for i, b := range bits {
		if b != 0 {
			data[i] = 1
		} else {
			data[i] = -1
		}
	}
	return PowerSpectrum(data)
}

// PeakRatio is the largest non-DC bin divided by the mean non-DC bin.
// Periodic streams score far above a random one.
func PeakRatio(spectrum []float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}
	peak, sum := 0.0, 0.0
	for _, v := range spectrum[1:] {
		sum += v
		peak = math.Max(peak, v)
	}
	mean := sum / float64(len(spectrum)-1)
	if mean == 0 {
		return 0
	}
	return peak / mean
}
