package stattest

// Alpha is the significance level shared by every test.
const Alpha = 0.05

// Kind names a test in the battery.
type Kind string

const (
	KindFrequency      Kind = "frequency"
	KindRuns           Kind = "runs"
	KindBlockChiSquare Kind = "block_chi_square"
	KindSerial         Kind = "serial"
)

// Title returns the display name of the test.
func (k Kind) Title() string {
	switch k {
	case KindFrequency:
		return "Frequency (Monobit)"
	case KindRuns:
		return "Runs"
	case KindBlockChiSquare:
		return "Block Chi-Square"
	case KindSerial:
		return "Serial (2-bit)"
	default:
		return string(k)
	}
}

// Outcome is the part every result shares. When Err is set the statistics
// were not computed and the test counts as non-passing.
type Outcome struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Bits   int     `json:"bits" yaml:"bits"`
	PValue float64 `json:"p_value" yaml:"p_value"`
	Random bool    `json:"random" yaml:"random"`
	Err    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the test could not run on its input.
func (o Outcome) Failed() bool { return o.Err != "" }

// Passed reports whether the test ran and the p-value exceeded Alpha.
func (o Outcome) Passed() bool { return !o.Failed() && o.Random }

func decide(kind Kind, n int, p float64) Outcome {
	return Outcome{Kind: kind, Bits: n, PValue: p, Random: p > Alpha}
}

func softError(kind Kind, n int, msg string) Outcome {
	return Outcome{Kind: kind, Bits: n, Err: msg}
}

// Result is implemented by every per-test record.
type Result interface {
	Summary() Outcome
}

type FrequencyResult struct {
	Outcome    `yaml:",inline"`
	Ones       int     `json:"ones" yaml:"ones"`
	Zeros      int     `json:"zeros" yaml:"zeros"`
	OnesRatio  float64 `json:"ones_ratio" yaml:"ones_ratio"`
	ZerosRatio float64 `json:"zeros_ratio" yaml:"zeros_ratio"`
	Expected   float64 `json:"expected" yaml:"expected"`
	ChiSquare  float64 `json:"chi_square" yaml:"chi_square"`
}

func (r FrequencyResult) Summary() Outcome { return r.Outcome }

type RunsResult struct {
	Outcome      `yaml:",inline"`
	Runs         int     `json:"runs" yaml:"runs"`
	ExpectedRuns float64 `json:"expected_runs" yaml:"expected_runs"`
	StdDev       float64 `json:"std_dev" yaml:"std_dev"`
	ZScore       float64 `json:"z_score" yaml:"z_score"`
}

func (r RunsResult) Summary() Outcome { return r.Outcome }

type BlockChiSquareResult struct {
	Outcome          `yaml:",inline"`
	BlockSize        int       `json:"block_size" yaml:"block_size"`
	Blocks           int       `json:"blocks" yaml:"blocks"`
	ChiSquare        float64   `json:"chi_square" yaml:"chi_square"`
	DegreesOfFreedom int       `json:"degrees_of_freedom" yaml:"degrees_of_freedom"`
	Observed         []int     `json:"observed,omitempty" yaml:"observed,omitempty"`
	Expected         []float64 `json:"expected,omitempty" yaml:"expected,omitempty"`
}

func (r BlockChiSquareResult) Summary() Outcome { return r.Outcome }

// SerialResult counts pairs indexed as 2*first+second: 00, 01, 10, 11.
type SerialResult struct {
	Outcome   `yaml:",inline"`
	Pairs     int     `json:"pairs" yaml:"pairs"`
	Counts    [4]int  `json:"counts" yaml:"counts"`
	Expected  float64 `json:"expected" yaml:"expected"`
	ChiSquare float64 `json:"chi_square" yaml:"chi_square"`
}

func (r SerialResult) Summary() Outcome { return r.Outcome }

// PairLabels names the SerialResult.Counts slots.
var PairLabels = [4]string{"00", "01", "10", "11"}
