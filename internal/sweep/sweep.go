// Package sweep runs the statistical battery over many seeds in parallel.
// Every seed gets its own generator, so workers share no state.
package sweep

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/metrics"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/stattest"
)

const DefaultBits = 10000

type Options struct {
	Bits            int
	BlockSize       int
	Workers         int
	MaxRounds       int
	TrajectorySteps int
	KeepBits        bool
	Logger          zerolog.Logger
}

// SeedReport is the outcome for one seed. Bits is only set with KeepBits.
type SeedReport struct {
	Seed       int64              `json:"seed"`
	SubSeed    uint16             `json:"sub_seed"`
	Collapsing bool               `json:"collapsing"`
	RawBits    int                `json:"raw_bits"`
	Rounds     int                `json:"rounds"`
	Stats      generator.Stats    `json:"stats"`
	Report     stattest.Report    `json:"report"`
	Metrics    map[string]float64 `json:"metrics"`
	Bits       rng.Bits           `json:"-"`
}

// Run evaluates every seed and returns reports in input order. The first
// failing seed cancels the rest.
func Run(ctx context.Context, seeds []int64, opts Options) ([]SeedReport, error) {
	if opts.Bits <= 0 {
		opts.Bits = DefaultBits
	}

	reports := make([]SeedReport, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := One(seed, opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			reports[i] = r
			opts.Logger.Debug().Int64("seed", seed).Str("verdict", string(r.Report.Scorecard.Verdict)).Msg("seed complete")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// One evaluates a single seed.
func One(seed int64, opts Options) (SeedReport, error) {
	if opts.Bits <= 0 {
		opts.Bits = DefaultBits
	}

	ms := metrics.Default()
	gen, err := generator.New(seed,
		generator.WithMaxRounds(opts.MaxRounds),
		generator.WithTrajectorySteps(opts.TrajectorySteps),
		generator.WithLogger(opts.Logger),
		generator.WithMetrics(ms...),
	)
	if err != nil {
		return SeedReport{}, err
	}

	bits, err := gen.BalancedBits(opts.Bits)
	if err != nil {
		return SeedReport{}, err
	}

	raw, _ := gen.Counts()
	r := SeedReport{
		Seed:       seed,
		SubSeed:    gen.SubSeed(),
		Collapsing: gen.Collapsing(),
		RawBits:    raw,
		Rounds:     gen.Rounds(),
		Stats:      gen.Stats(),
		Report:     stattest.RunAllBlock(bits, opts.BlockSize),
		Metrics:    metrics.Snapshot(ms),
	}
	if opts.KeepBits {
		r.Bits = bits
	}
	return r, nil
}

// Range returns n consecutive seeds starting at start.
func Range(start int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = start + int64(i)
	}
	return seeds
}

// Summary aggregates a sweep.
type Summary struct {
	Seeds       int                       `json:"seeds"`
	Verdicts    map[stattest.Verdict]int  `json:"verdicts"`
	PassRates   map[stattest.Kind]float64 `json:"pass_rates"`
	MeanBalance float64                   `json:"mean_balance"`
	Collapsing  int                       `json:"collapsing"`
}

func Summarize(reports []SeedReport) Summary {
	s := Summary{
		Seeds:     len(reports),
		Verdicts:  make(map[stattest.Verdict]int),
		PassRates: make(map[stattest.Kind]float64),
	}
	if len(reports) == 0 {
		return s
	}

	for _, r := range reports {
		s.Verdicts[r.Report.Scorecard.Verdict]++
		s.MeanBalance += r.Stats.Balance
		if r.Collapsing {
			s.Collapsing++
		}
		for _, res := range r.Report.Results() {
			o := res.Summary()
			if o.Passed() {
				s.PassRates[o.Kind]++
			} else if _, ok := s.PassRates[o.Kind]; !ok {
				s.PassRates[o.Kind] = 0
			}
		}
	}

	n := float64(len(reports))
	s.MeanBalance /= n
	for k := range s.PassRates {
		s.PassRates[k] /= n
	}
	return s
}
