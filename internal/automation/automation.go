// Package automation runs scripted sequences of generation steps described
// in YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/collatzrng/internal/cipher"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/metrics"
	"github.com/san-kum/collatzrng/internal/stattest"
	"github.com/san-kum/collatzrng/internal/storage"
	"github.com/san-kum/collatzrng/internal/sweep"
)

// ErrEmptyScenario is returned for a scenario without steps.
var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted generation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step. A step with Seeds runs a parallel sweep;
// otherwise it generates Bits balanced bits from Seed, optionally derives a
// key, seals Message and saves the stream under SaveAs.
type ScenarioStep struct {
	Name      string  `yaml:"name"`
	Seed      int64   `yaml:"seed"`
	Seeds     []int64 `yaml:"seeds,omitempty"`
	Bits      int     `yaml:"bits"`
	BlockSize int     `yaml:"block_size,omitempty"`
	MaxRounds int     `yaml:"max_rounds,omitempty"`
	KeyBytes  int     `yaml:"key_bytes,omitempty"`
	Message   string  `yaml:"message,omitempty"`
	SaveAs    string  `yaml:"save_as,omitempty"`
}

// StepResult holds whatever the step produced.
type StepResult struct {
	Step      ScenarioStep
	Stats     generator.Stats
	Report    stattest.Report
	Key       string
	Sealed    *cipher.Sealed
	RoundTrip bool
	RunID     string
	Sweep     []sweep.SeedReport
}

type RunOptions struct {
	Store   *storage.Store
	Workers int
	Logger  zerolog.Logger
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, step := range s.Steps {
		if step.Seed <= 0 && len(step.Seeds) == 0 {
			return fmt.Errorf("step %d: seed must be positive", i+1)
		}
		if step.Bits < 0 || step.KeyBytes < 0 {
			return fmt.Errorf("step %d: sizes must not be negative", i+1)
		}
	}
	return nil
}

// RunScenario executes all steps in order. On failure it returns the
// results of the steps that completed.
func RunScenario(ctx context.Context, scenario *Scenario, opts RunOptions) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		opts.Logger.Info().Int("step", i+1).Int("of", len(scenario.Steps)).Str("name", step.Name).Msg("running step")

		var (
			res StepResult
			err error
		)
		if len(step.Seeds) > 0 {
			res, err = runSweep(ctx, step, opts)
		} else {
			res, err = runStep(step, opts)
		}
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func runStep(step ScenarioStep, opts RunOptions) (StepResult, error) {
	res := StepResult{Step: step}
	genOpts := []generator.Option{
		generator.WithMaxRounds(step.MaxRounds),
		generator.WithLogger(opts.Logger),
	}

	ms := metrics.Default()
	gen, err := generator.New(step.Seed, append(genOpts, generator.WithMetrics(ms...))...)
	if err != nil {
		return res, err
	}

	bits, err := gen.BalancedBits(step.Bits)
	if err != nil {
		return res, err
	}
	res.Stats = gen.Stats()
	res.Report = stattest.RunAllBlock(bits, step.BlockSize)

	if step.KeyBytes > 0 {
		keyGen, err := generator.New(step.Seed, genOpts...)
		if err != nil {
			return res, err
		}
		if res.Key, err = keyGen.KeyHex(step.KeyBytes); err != nil {
			return res, err
		}
	}

	if step.Message != "" {
		sealed, err := cipher.Encrypt(step.Message, step.Seed, genOpts...)
		if err != nil {
			return res, err
		}
		plain, err := cipher.Decrypt(sealed.CiphertextHex, step.Seed, genOpts...)
		if err != nil {
			return res, err
		}
		res.Sealed = &sealed
		res.RoundTrip = plain == step.Message
	}

	if step.SaveAs != "" && opts.Store != nil {
		raw, _ := gen.Counts()
		report := res.Report
		res.RunID, err = opts.Store.Save(storage.Run{
			Label:      step.SaveAs,
			Seed:       step.Seed,
			SubSeed:    gen.SubSeed(),
			Collapsing: gen.Collapsing(),
			RawBits:    raw,
			Bits:       bits,
			Report:     &report,
			Metrics:    metrics.Snapshot(ms),
		})
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

func runSweep(ctx context.Context, step ScenarioStep, opts RunOptions) (StepResult, error) {
	reports, err := sweep.Run(ctx, step.Seeds, sweep.Options{
		Bits:      step.Bits,
		BlockSize: step.BlockSize,
		Workers:   opts.Workers,
		MaxRounds: step.MaxRounds,
		KeepBits:  step.SaveAs != "" && opts.Store != nil,
		Logger:    opts.Logger,
	})
	if err != nil {
		return StepResult{Step: step}, err
	}

	res := StepResult{Step: step, Sweep: reports}
	if step.SaveAs == "" || opts.Store == nil {
		return res, nil
	}
	for i, r := range reports {
		report := r.Report
		id, err := opts.Store.Save(storage.Run{
			Label:      step.SaveAs,
			Seed:       r.Seed,
			SubSeed:    r.SubSeed,
			Collapsing: r.Collapsing,
			RawBits:    r.RawBits,
			Bits:       r.Bits,
			Report:     &report,
			Metrics:    r.Metrics,
		})
		if err != nil {
			return res, err
		}
		if i == 0 {
			res.RunID = id
		}
	}
	return res, nil
}
