package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/collatzrng/internal/stattest"
)

var (
	// Glass panel effect with subtle border
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// VerdictLabel renders a scorecard verdict in its traffic-light color.
func VerdictLabel(v stattest.Verdict) string {
	switch v {
	case stattest.VerdictSuccess:
		return SparkHigh.Bold(true).Render("SUCCESS")
	case stattest.VerdictPartial:
		return SparkMid.Bold(true).Render("PARTIAL")
	default:
		return SparkLow.Bold(true).Render("FAILURE")
	}
}

// PassLabel renders one test outcome.
func PassLabel(o stattest.Outcome) string {
	switch {
	case o.Failed():
		return SparkMid.Render("ERROR")
	case o.Random:
		return SparkHigh.Render("PASS")
	default:
		return SparkLow.Render("FAIL")
	}
}

// ProgressBar renders a bar colored by how full it is.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	// Sample to fit width
	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		if norm > 0.7 {
			result.WriteString(SparkHigh.Render(c))
		} else if norm > 0.3 {
			result.WriteString(SparkMid.Render(c))
		} else {
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// Separator draws a muted rule with a center mark.
func Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
