// Package export renders bit streams and their running statistics as SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/collatzrng/internal/rng"
)

const (
	background = "#0a0a0a"
	foreground = "#00ff00"
	guide      = "#444444"
)

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// RasterSVG lays bits out in rows of cols cells and fills the ones. Runs of
// ones on a row share a single rect.
func RasterSVG(bits rng.Bits, cols, cell int) string {
	if len(bits) == 0 || cols <= 0 || cell <= 0 {
		return ""
	}
	rows := (len(bits) + cols - 1) / cols

	var sb strings.Builder
	header(&sb, cols*cell, rows*cell)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", foreground)

	for row := 0; row < rows; row++ {
		start := row * cols
		end := min(start+cols, len(bits))
		for i := start; i < end; {
			if bits[i] == 0 {
				i++
				continue
			}
			j := i
			for j < end && bits[j] != 0 {
				j++
			}
			fmt.Fprintf(&sb, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\"/>\n",
				(i-start)*cell, row*cell, (j-i)*cell, cell)
			i = j
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesSVG draws values as a polyline over [0,1] with a dashed guide at
// level. Values outside [0,1] are clamped.
func SeriesSVG(values []float64, level float64, width, height int) string {
	if len(values) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	y := func(v float64) float64 {
		v = max(0, min(1, v))
		return float64(height) - v*float64(height)
	}
	dx := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" stroke=\"%s\" stroke-dasharray=\"4 4\"/>\n",
		y(level), width, y(level), guide)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, foreground)
	for i, v := range values {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", 0.0, y(v))
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", float64(i)*dx, y(v))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteFile writes an SVG document to path.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export: nothing to write to %s", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
