package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/automation"
	"github.com/san-kum/collatzrng/internal/config"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/stattest"
	"github.com/san-kum/collatzrng/internal/storage"
	"github.com/san-kum/collatzrng/internal/sweep"
	"github.com/san-kum/collatzrng/internal/tui"
	"github.com/san-kum/collatzrng/internal/viz"
)

func runReport(bits rng.Bits) stattest.Report {
	return stattest.RunAllBlock(bits, cfg.BlockSize)
}

func testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "run the statistical battery on a fresh or saved stream",
		Args:  cobra.NoArgs,
		RunE:  runTest,
	}
	cmd.Flags().StringVar(&fromRun, "run", "", "test the bits of a saved run instead")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as json")
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var (
		bits   rng.Bits
		source string
	)
	if fromRun != "" {
		st := storage.New(cfg.DataDir)
		b, err := st.LoadBits(fromRun)
		if err != nil {
			return err
		}
		bits = b
		source = "run " + fromRun
	} else {
		gen, err := generator.New(cfg.Seed, genOptions()...)
		if err != nil {
			return err
		}
		if bits, err = gen.BalancedBits(cfg.Bits); err != nil {
			return err
		}
		source = "seed " + strconv.FormatInt(cfg.Seed, 10)
	}

	report := runReport(bits)
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "%s, %s bits\n\n", source, humanize.Comma(int64(len(bits))))
	fmt.Fprintln(out, viz.ReportTable(report))
	return nil
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [seed...]",
		Short: "run the battery over many seeds in parallel",
		RunE:  runSweep,
	}
	cmd.Flags().Int64Var(&seedFrom, "from", 1, "first seed of a consecutive range")
	cmd.Flags().IntVar(&seedCount, "count", 0, "number of consecutive seeds from --from")
	cmd.Flags().BoolVar(&saveRun, "save", false, "save every seed's stream")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print reports as json")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	seeds, err := sweepSeeds(args)
	if err != nil {
		return err
	}

	logger.Info().Int("seeds", len(seeds)).Int("bits", cfg.Bits).Int("workers", cfg.Workers).Msg("sweep started")
	reports, err := sweep.Run(cmd.Context(), seeds, sweep.Options{
		Bits:            cfg.Bits,
		BlockSize:       cfg.BlockSize,
		Workers:         cfg.Workers,
		MaxRounds:       cfg.MaxRounds,
		TrajectorySteps: cfg.TrajectorySteps,
		KeepBits:        saveRun,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	summary := sweep.Summarize(reports)

	if saveRun {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, r := range reports {
			report := r.Report
			id, err := st.Save(storage.Run{
				Label:      "sweep",
				Seed:       r.Seed,
				SubSeed:    r.SubSeed,
				Collapsing: r.Collapsing,
				RawBits:    r.RawBits,
				Bits:       r.Bits,
				Report:     &report,
				Metrics:    r.Metrics,
			})
			if err != nil {
				return fmt.Errorf("save seed %d: %w", r.Seed, err)
			}
			logger.Info().Int64("seed", r.Seed).Str("run", id).Msg("saved")
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Reports []sweep.SeedReport `json:"reports"`
			Summary sweep.Summary      `json:"summary"`
		}{reports, summary})
	}

	fmt.Fprintln(out, viz.SweepTable(reports))
	fmt.Fprintln(out)
	printSummary(cmd, summary)
	return nil
}

// sweepSeeds picks explicit arguments, then --count, then the config seeds.
func sweepSeeds(args []string) ([]int64, error) {
	if len(args) > 0 {
		seeds := make([]int64, len(args))
		for i, a := range args {
			s, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed %q: %w", a, err)
			}
			if err := rng.CheckSeed(s); err != nil {
				return nil, err
			}
			seeds[i] = s
		}
		return seeds, nil
	}
	if seedCount > 0 {
		if err := rng.CheckSeed(seedFrom); err != nil {
			return nil, err
		}
		return sweep.Range(seedFrom, seedCount), nil
	}
	return cfg.SweepSeeds(), nil
}

func printSummary(cmd *cobra.Command, s sweep.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seeds: %s  collapsing: %d  mean balance: %.4f\n",
		humanize.Comma(int64(s.Seeds)), s.Collapsing, s.MeanBalance)

	for _, v := range []stattest.Verdict{stattest.VerdictSuccess, stattest.VerdictPartial, stattest.VerdictFailure} {
		fmt.Fprintf(out, "  %-8s %d\n", v, s.Verdicts[v])
	}

	kinds := make([]string, 0, len(s.PassRates))
	for k := range s.PassRates {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		kind := stattest.Kind(k)
		fmt.Fprintf(out, "  %-18s %s %5.1f%%\n", kind.Title(), viz.ProgressBar(s.PassRates[kind]*100, 20), s.PassRates[kind]*100)
	}
}

func scenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, automation.RunOptions{
		Store:   st,
		Workers: cfg.Workers,
		Logger:  logger,
	})
	if sc.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	}
	for i, res := range results {
		fmt.Fprintf(out, "\n[%d] %s\n", i+1, res.Step.Name)
		if len(res.Sweep) > 0 {
			fmt.Fprintln(out, viz.SweepTable(res.Sweep))
			continue
		}
		fmt.Fprintf(out, "bits: %s  balance: %.4f  verdict: %s\n",
			humanize.Comma(int64(res.Stats.Total)), res.Stats.Balance, viz.VerdictLabel(res.Report.Scorecard.Verdict))
		if res.Key != "" {
			fmt.Fprintf(out, "key: %s\n", res.Key)
		}
		if res.Sealed != nil {
			fmt.Fprintf(out, "ciphertext: %s  round trip: %v\n", res.Sealed.CiphertextHex, res.RoundTrip)
		}
		if res.RunID != "" {
			fmt.Fprintf(out, "saved: %s\n", res.RunID)
		}
	}
	return err
}

func liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "stream bits and watch the battery live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alternate screen owns the terminal; keep logs off it
			return tui.Run(tui.Options{
				Seeds:     cfg.SweepSeeds(),
				Chunk:     chunk,
				Window:    window,
				MaxRounds: cfg.MaxRounds,
				Logger:    zerolog.Nop(),
			})
		},
	}
	cmd.Flags().IntVar(&chunk, "chunk", tui.DefaultChunk, "bits generated per tick")
	cmd.Flags().IntVar(&window, "window", tui.DefaultWindow, "bits kept for the battery")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list seed presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-8s %-45s seeds=%v bits=%s\n", name, p.Description, p.Seeds, humanize.Comma(int64(p.Bits)))
			}
			return nil
		},
	}
}

// metricsLine renders a metrics snapshot in a stable order.
func metricsLine(snapshot map[string]float64) string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	line := ""
	for i, name := range names {
		if i > 0 {
			line += "  "
		}
		line += fmt.Sprintf("%s=%.4f", name, snapshot[name])
	}
	return line
}
