package analysis

import (
	"strings"

	"github.com/san-kum/collatzrng/internal/chaos"
)

// BifurcationPoint holds the distinct attractor values found at one rate.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Bifurcation sweeps the logistic rate over [rMin, rMax], iterates
// transient steps from x0, then records the distinct values visited in the
// next record steps. Values are deduplicated at three decimals.
func Bifurcation(rMin, rMax float64, steps int, x0 float64, transient, record int) []BifurcationPoint {
	if steps <= 1 {
		steps = 2 // Prevent division by zero
	}
	dr := (rMax - rMin) / float64(steps-1)

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		r := rMin + float64(i)*dr

		x := x0
		for j := 0; j < transient; j++ {
			x = chaos.Map(r, x)
		}

		values := make([]float64, 0, 16)
		seen := make(map[int]bool)
		for j := 0; j < record; j++ {
			x = chaos.Map(r, x)
			// Quantize to find distinct values
			key := int(x * 1000)
			if !seen[key] {
				seen[key] = true
				values = append(values, x)
			}
		}

		results = append(results, BifurcationPoint{Param: r, Values: values})
	}
	return results
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return render(canvas)
}

// ReturnMap returns n consecutive pairs (x(k), x(k+1)) of the logistic map
// at rate r.
func ReturnMap(r, x0 float64, n int) []Point {
	out := make([]Point, 0, n)
	x := x0
	for i := 0; i < n; i++ {
		next := chaos.Map(r, x)
		out = append(out, Point{X: x, Y: next})
		x = next
	}
	return out
}

// ScatterToASCII plots points on a width by height canvas.
func ScatterToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := newCanvas(width, height)
	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}
	return render(canvas)
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func render(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
