package viz

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/san-kum/collatzrng/internal/stattest"
	"github.com/san-kum/collatzrng/internal/storage"
	"github.com/san-kum/collatzrng/internal/sweep"
)

var (
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		}).
		Headers(headers...)
}

// ReportTable shows one row per test followed by the scorecard line.
func ReportTable(r stattest.Report) string {
	t := newTable("test", "statistic", "p-value", "result")
	for _, res := range r.Results() {
		o := res.Summary()
		stat := statistic(res)
		p := fmt.Sprintf("%.6f", o.PValue)
		if o.Failed() {
			stat, p = o.Err, "-"
		}
		t.Row(o.Kind.Title(), stat, p, PassLabel(o))
	}

	sc := r.Scorecard
	return t.String() + "\n" + fmt.Sprintf("%d/%d passed (%.0f%%)  %s",
		sc.Passed, sc.Total, sc.Ratio*100, VerdictLabel(sc.Verdict))
}

func statistic(res stattest.Result) string {
	switch v := res.(type) {
	case stattest.FrequencyResult:
		return fmt.Sprintf("chi²=%.4f ones=%d zeros=%d", v.ChiSquare, v.Ones, v.Zeros)
	case stattest.RunsResult:
		return fmt.Sprintf("runs=%d expected=%.1f z=%.4f", v.Runs, v.ExpectedRuns, v.ZScore)
	case stattest.BlockChiSquareResult:
		return fmt.Sprintf("chi²=%.4f blocks=%d df=%d", v.ChiSquare, v.Blocks, v.DegreesOfFreedom)
	case stattest.SerialResult:
		return fmt.Sprintf("chi²=%.4f 00=%d 01=%d 10=%d 11=%d",
			v.ChiSquare, v.Counts[0], v.Counts[1], v.Counts[2], v.Counts[3])
	default:
		return ""
	}
}

// SweepTable shows one row per seed.
func SweepTable(reports []sweep.SeedReport) string {
	t := newTable("seed", "sub-seed", "ones", "balance", "raw bits", "passed", "verdict")
	for _, r := range reports {
		sub := strconv.Itoa(int(r.SubSeed))
		if r.Collapsing {
			sub += "*"
		}
		sc := r.Report.Scorecard
		t.Row(
			humanize.Comma(r.Seed),
			sub,
			fmt.Sprintf("%.4f", r.Stats.OnesRatio),
			fmt.Sprintf("%.4f", r.Stats.Balance),
			humanize.Comma(int64(r.RawBits)),
			fmt.Sprintf("%d/%d", sc.Passed, sc.Total),
			VerdictLabel(sc.Verdict),
		)
	}
	return t.String()
}

// RunsTable lists saved runs.
func RunsTable(runs []storage.RunMetadata) string {
	t := newTable("id", "seed", "bits", "balance", "verdict", "saved")
	for _, r := range runs {
		verdict := "-"
		if r.Report != nil {
			verdict = VerdictLabel(r.Report.Scorecard.Verdict)
		}
		t.Row(
			r.ID,
			strconv.FormatInt(r.Seed, 10),
			humanize.Comma(int64(r.Bits)),
			fmt.Sprintf("%.4f", r.Stats.Balance),
			verdict,
			humanize.Time(r.Timestamp),
		)
	}
	return t.String()
}
