package stattest

import "github.com/san-kum/collatzrng/internal/rng"

// Verdict grades a battery by the number of passing tests.
type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictPartial Verdict = "partial"
	VerdictFailure Verdict = "failure"
)

// Scorecard aggregates the battery. Soft-error results count as failing.
type Scorecard struct {
	Passed  int     `json:"passed" yaml:"passed"`
	Total   int     `json:"total" yaml:"total"`
	Ratio   float64 `json:"ratio" yaml:"ratio"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
}

// Grade maps a pass count to a verdict: 3 or more is success, 2 is partial.
func Grade(passed int) Verdict {
	switch {
	case passed >= 3:
		return VerdictSuccess
	case passed >= 2:
		return VerdictPartial
	default:
		return VerdictFailure
	}
}

// Score builds a scorecard over results.
func Score(results ...Result) Scorecard {
	passed := 0
	for _, r := range results {
		if r.Summary().Passed() {
			passed++
		}
	}
	sc := Scorecard{Passed: passed, Total: len(results), Verdict: Grade(passed)}
	if sc.Total > 0 {
		sc.Ratio = float64(passed) / float64(sc.Total)
	}
	return sc
}

// Report holds one run of the full battery.
type Report struct {
	Frequency      FrequencyResult      `json:"frequency" yaml:"frequency"`
	Runs           RunsResult           `json:"runs" yaml:"runs"`
	BlockChiSquare BlockChiSquareResult `json:"block_chi_square" yaml:"block_chi_square"`
	Serial         SerialResult         `json:"serial" yaml:"serial"`
	Scorecard      Scorecard            `json:"scorecard" yaml:"scorecard"`
}

// Results returns the four records in battery order.
func (r Report) Results() []Result {
	return []Result{r.Frequency, r.Runs, r.BlockChiSquare, r.Serial}
}

// RunAll runs the four tests with the default block size.
func RunAll(bits rng.Bits) Report {
	return RunAllBlock(bits, DefaultBlockSize)
}

// RunAllBlock is RunAll with an explicit block size for BlockChiSquare.
func RunAllBlock(bits rng.Bits, blockSize int) Report {
	r := Report{
		Frequency:      Frequency(bits),
		Runs:           Runs(bits),
		BlockChiSquare: BlockChiSquare(bits, blockSize),
		Serial:         Serial(bits),
	}
	r.Scorecard = Score(r.Results()...)
	return r
}
