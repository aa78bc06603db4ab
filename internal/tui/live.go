// Package tui is an interactive terminal view that streams balanced bits
// from a chosen seed and re-runs the battery on a sliding window.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/metrics"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/stattest"
	"github.com/san-kum/collatzrng/internal/viz"
)

const (
	DefaultChunk  = 64
	DefaultWindow = 2048
	maxChunk      = 4096
	historyCap    = 120
	rasterWidth   = 32
	rasterHeight  = 8
)

type state int

const (
	stateMenu state = iota
	stateStream
)

type Options struct {
	Seeds     []int64
	Chunk     int
	Window    int
	MaxRounds int
	Logger    zerolog.Logger
}

type Model struct {
	state  state
	cursor int
	seeds  []int64
	opts   Options

	gen     *generator.Generator
	ms      []rng.Metric
	seed    int64
	chunk   int
	paused  bool
	recent  rng.Bits
	total   int
	history []float64
	report  stattest.Report
	scored  bool
	err     error

	theme  viz.Theme
	width  int
	height int
}

func New(opts Options) Model {
	if opts.Chunk <= 0 {
		opts.Chunk = DefaultChunk
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if len(opts.Seeds) == 0 {
		opts.Seeds = []int64{12345}
	}
	return Model{
		seeds:  opts.Seeds,
		opts:   opts,
		chunk:  opts.Chunk,
		theme:  viz.ThemeCyberpunk,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateStream {
			return m, nil
		}
		if !m.paused && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "t":
		m.theme = viz.NextTheme(m.theme)
		return m, nil
	}

	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.streamKey(msg)
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.seeds)-1 {
			m.cursor++
		}
	case "enter":
		m.start(m.seeds[m.cursor])
		return m, tick()
	}
	return m, nil
}

func (m Model) streamKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		m.paused = !m.paused
	case "r":
		m.start(m.seed)
	case "+", "=":
		m.chunk = min(m.chunk*2, maxChunk)
	case "-":
		m.chunk = max(m.chunk/2, 8)
	case "n":
		m.advance()
	case "esc":
		m.state = stateMenu
	}
	return m, nil
}

func (m *Model) start(seed int64) {
	m.state = stateStream
	m.seed = seed
	m.paused = false
	m.recent = nil
	m.total = 0
	m.history = m.history[:0]
	m.scored = false
	m.ms = metrics.Default()

	m.gen, m.err = generator.New(seed,
		generator.WithMaxRounds(m.opts.MaxRounds),
		generator.WithLogger(m.opts.Logger),
		generator.WithMetrics(m.ms...),
	)
}

// advance pulls one chunk, slides the window and rescores it.
func (m *Model) advance() {
	if m.gen == nil {
		return
	}
	bits, err := m.gen.BalancedBits(m.chunk)
	if err != nil {
		m.err = err
		return
	}

	m.total += len(bits)
	m.recent = append(m.recent, bits...)
	if over := len(m.recent) - m.opts.Window; over > 0 {
		m.recent = append(rng.Bits(nil), m.recent[over:]...)
	}

	m.history = append(m.history, generator.Summarize(m.recent).OnesRatio)
	if len(m.history) > historyCap {
		m.history = m.history[len(m.history)-historyCap:]
	}

	m.report = stattest.RunAll(m.recent)
	m.scored = true
}

func (m Model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewStream()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.theme.Title().Render("collatzrng live") + "\n\n")
	for i, s := range m.seeds {
		cursor := "  "
		line := fmt.Sprintf("seed %d", s)
		if i == m.cursor {
			cursor = "> "
			line = m.theme.Value().Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + viz.KeyHint.Render("↑/↓ select • enter stream • t theme • q quit"))
	return b.String()
}

func (m Model) viewStream() string {
	label, value := m.theme.Label(), m.theme.Value()

	status := viz.StatusRunning.Render("● streaming")
	if m.paused {
		status = viz.StatusPaused.Render("❚❚ paused")
	}
	header := m.theme.Title().Render(fmt.Sprintf("seed %d", m.seed)) + "  " + status

	if m.err != nil {
		return header + "\n\n" + viz.SparkLow.Render(m.err.Error()) + "\n\n" +
			viz.KeyHint.Render("r restart • esc seeds • q quit")
	}

	var stats strings.Builder
	fmt.Fprintf(&stats, "%s %s\n", label.Render("generated"), value.Render(fmt.Sprintf("%d", m.total)))
	fmt.Fprintf(&stats, "%s %s\n", label.Render("window   "), value.Render(fmt.Sprintf("%d", len(m.recent))))
	fmt.Fprintf(&stats, "%s %s\n", label.Render("chunk    "), value.Render(fmt.Sprintf("%d", m.chunk)))
	if m.gen != nil {
		fmt.Fprintf(&stats, "%s %s\n", label.Render("sub-seed "), value.Render(fmt.Sprintf("%d", m.gen.SubSeed())))
	}
	for _, mt := range m.ms {
		fmt.Fprintf(&stats, "%s %s\n", label.Render(fmt.Sprintf("%-9s", trim(mt.Name(), 9))), value.Render(fmt.Sprintf("%.4f", mt.Value())))
	}

	raster := viz.GlassPanel.Render(viz.BitRaster(m.recent, rasterWidth, rasterHeight))
	top := lipgloss.JoinHorizontal(lipgloss.Top, raster, "  ", stats.String())

	var b strings.Builder
	b.WriteString(header + "\n\n" + top + "\n")
	b.WriteString(label.Render("ones ratio ") + viz.SparklineChart(m.history, 60) + "\n\n")
	if m.scored {
		b.WriteString(viz.ReportTable(m.report) + "\n")
	}
	b.WriteString("\n" + viz.KeyHint.Render("space pause • n step • +/- chunk • r reset • t theme • esc seeds • q quit"))
	return b.String()
}

func trim(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Run starts the program on the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
