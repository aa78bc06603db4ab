package viz

import (
	"math"
	"math/big"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/collatzrng/internal/rng"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// PlotSeries draws a line chart with the default size.
func PlotSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTrajectory plots log2 of each trajectory value, which keeps seeds with
// large excursions readable.
func PlotTrajectory(values []*big.Int) string {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = log2(v)
	}
	return PlotSeries(data, "log2(n) per step")
}

func log2(v *big.Int) float64 {
	if v.Sign() <= 0 {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	if math.IsInf(f, 0) {
		return float64(v.BitLen() - 1)
	}
	return math.Log2(f)
}

// RunningRatio returns the ones ratio after each bit.
func RunningRatio(bits rng.Bits) []float64 {
	out := make([]float64, len(bits))
	ones := 0
	for i, b := range bits {
		if b != 0 {
			ones++
		}
		out[i] = float64(ones) / float64(i+1)
	}
	return out
}

// PlotRunningRatio plots how the ones ratio settles toward one half.
func PlotRunningRatio(bits rng.Bits) string {
	return PlotSeries(RunningRatio(bits), "running ones ratio")
}

// PlotSpectrum plots a bit-stream power spectrum without the DC bin.
func PlotSpectrum(spectrum []float64) string {
	if len(spectrum) < 2 {
		return ""
	}
	return PlotSeries(spectrum[1:], "power spectrum (±1 mapped bits)")
}
