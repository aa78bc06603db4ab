package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/analysis"
	"github.com/san-kum/collatzrng/internal/chaos"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/viz"
)

const (
	lyapunovTransient = 1000
	lyapunovSamples   = 10000
)

func chaosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chaos",
		Short: "lyapunov exponent and bifurcation diagram of the logistic map",
		Args:  cobra.NoArgs,
		RunE:  runChaos,
	}
	cmd.Flags().Float64Var(&rMin, "r-min", 2.8, "lowest rate of the sweep")
	cmd.Flags().Float64Var(&rMax, "r-max", 4.0, "highest rate of the sweep")
	cmd.Flags().IntVar(&rSteps, "steps", 120, "rates sampled by the sweep")
	return cmd
}

func runChaos(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if rMax <= rMin || rSteps < 2 {
		return fmt.Errorf("need r-min < r-max and at least 2 steps")
	}

	x0 := chaos.Normalize(cfg.Seed)
	lambda := analysis.LogisticLyapunov(chaos.R, x0, lyapunovTransient, lyapunovSamples)
	sep := analysis.LyapunovSeparation(chaos.R, x0, 1e-9, lyapunovSamples)

	fmt.Fprintf(out, "rate: %.2f  x0: %.6f (seed %d)\n", chaos.R, x0, cfg.Seed)
	fmt.Fprintf(out, "lyapunov (derivative): %.4f\n", lambda)
	fmt.Fprintf(out, "lyapunov (separation): %.4f\n", sep)
	if lambda > 0 {
		fmt.Fprintln(out, "regime: chaotic")
	} else {
		fmt.Fprintln(out, "regime: periodic")
	}

	curve := analysis.LyapunovSweep(rMin, rMax, rSteps, x0, lyapunovTransient, 2000)
	exps := make([]float64, len(curve))
	for i, p := range curve {
		exps[i] = p.Y
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.PlotSeries(exps, fmt.Sprintf("lyapunov exponent, r in [%.2f, %.2f]", rMin, rMax)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "bifurcation, r in [%.2f, %.2f] (onset of chaos near %.2f)\n", rMin, rMax, chaos.ChaosThreshold)
	fmt.Fprintln(out, analysis.BifurcationToASCII(analysis.Bifurcation(rMin, rMax, rSteps, x0, 500, 200), 80, 24))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "return map x(k) -> x(k+1), r=%.2f\n", chaos.R)
	fmt.Fprintln(out, analysis.ScatterToASCII(analysis.ReturnMap(chaos.R, x0, 2000), 60, 20))
	return nil
}

func spectrumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spectrum",
		Short: "power spectrum of the balanced stream",
		Args:  cobra.NoArgs,
		RunE:  runSpectrum,
	}
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	gen, err := generator.New(cfg.Seed, genOptions()...)
	if err != nil {
		return err
	}
	bits, err := gen.BalancedBits(cfg.Bits)
	if err != nil {
		return err
	}
	if len(bits) == 0 {
		return fmt.Errorf("no bits to analyze")
	}

	spectrum := analysis.BitSpectrum(bits)
	fmt.Fprintf(out, "seed: %d  bits: %d  bins: %d\n\n", cfg.Seed, len(bits), len(spectrum))
	fmt.Fprintln(out, viz.PlotSpectrum(spectrum))
	fmt.Fprintf(out, "peak ratio: %.2f\n", analysis.PeakRatio(spectrum))
	return nil
}
