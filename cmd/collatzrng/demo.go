package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/chaos"
	"github.com/san-kum/collatzrng/internal/cipher"
	"github.com/san-kum/collatzrng/internal/extract"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/lfsr"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/sweep"
	"github.com/san-kum/collatzrng/internal/trajectory"
	"github.com/san-kum/collatzrng/internal/viz"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "walk through every stage of the generator",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	steps := []struct {
		title string
		run   func(*cobra.Command) error
	}{
		{"trajectory", demoTrajectory},
		{"lfsr", demoLFSR},
		{"logistic map", demoLogistic},
		{"von neumann extractor", demoExtractor},
		{"generator", demoGenerator},
		{"encryption", demoCipher},
		{"seed comparison", demoCompare},
	}

	out := cmd.OutOrStdout()
	for i, step := range steps {
		fmt.Fprintf(out, "\n%s\n%d. %s\n%s\n", viz.Separator(60), i+1, step.title, viz.Separator(60))
		if err := step.run(cmd); err != nil {
			return fmt.Errorf("%s: %w", step.title, err)
		}
	}
	return nil
}

func demoTrajectory(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, s := range []int64{27, 12345, 7} {
		m, err := trajectory.Walk(s, cfg.TrajectorySteps)
		if err != nil {
			return err
		}
		values := m.Values()
		head := make([]string, 0, 15)
		for i := 0; i < len(values) && i < 15; i++ {
			head = append(head, values[i].String())
		}
		parity := m.Parity()
		fmt.Fprintf(out, "seed %d: %d values\n", s, len(values))
		fmt.Fprintf(out, "  first 15: %s\n", strings.Join(head, " "))
		fmt.Fprintf(out, "  parity:   %s\n", truncate(parity.String(), 30))
		fmt.Fprintf(out, "  ones:     %.2f%%\n", float64(parity.Ones())/float64(len(parity))*100)
	}
	return nil
}

func demoLFSR(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	const s = uint16(0xACE1)
	bits := lfsr.New(s).Bits(100)
	fmt.Fprintf(out, "seed: 0x%04X (%016b)\n", s, s)
	fmt.Fprintf(out, "first 50: %s\n", bits[:50])
	fmt.Fprintf(out, "ones: %d/100  zeros: %d/100\n", bits.Ones(), bits.Zeros())
	return nil
}

func demoLogistic(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	l, err := chaos.New(0.3)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "x0: %.6f  r: %.2f\n", l.Initial(), chaos.R)
	for i := 1; i <= 10; i++ {
		x := l.Step()
		bit := 0
		if x >= 0.5 {
			bit = 1
		}
		fmt.Fprintf(out, "  x%-2d = %.6f -> %d\n", i, x, bit)
	}
	l.Reset()
	bits := l.Bits(100)
	fmt.Fprintf(out, "first 50: %s\n", bits[:50])
	fmt.Fprintf(out, "ones: %d%%\n", bits.Ones())
	return nil
}

func demoExtractor(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	biased := rng.ParseBits("11011100111010111101")
	balanced := extract.VonNeumann(biased)
	fmt.Fprintf(out, "input:  %s (%.0f%% ones)\n", biased, float64(biased.Ones())/float64(len(biased))*100)
	fmt.Fprintf(out, "output: %s", balanced)
	if len(balanced) > 0 {
		fmt.Fprintf(out, " (%.0f%% ones)", float64(balanced.Ones())/float64(len(balanced))*100)
	}
	fmt.Fprintf(out, "\ndiscarded: %d bits\n", len(biased)-len(balanced))
	return nil
}

func demoGenerator(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	const seed = 12345
	gen, err := generator.New(seed, genOptions()...)
	if err != nil {
		return err
	}
	bits, err := gen.BalancedBits(256)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seed: %d\n", seed)
	printBits(cmd, bits)

	s := gen.Stats()
	fmt.Fprintf(out, "total: %d  ones: %d (%.2f%%)  zeros: %d (%.2f%%)  balance: %.4f\n",
		s.Total, s.Ones, s.OnesRatio*100, s.Zeros, s.ZerosRatio*100, s.Balance)

	key, err := gen.KeyHex(16)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "128-bit key: %s\n", key)
	return nil
}

func demoCipher(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	const seed = 27644437
	messages := []string{
		"Merhaba Dünya!",
		"RSÜ Algoritması",
		"Collatz + Fibonacci + Chaos = Güvenlik",
		"12345",
	}
	for _, msg := range messages {
		sealed, err := cipher.Encrypt(msg, seed, genOptions()...)
		if err != nil {
			return err
		}
		plain, err := cipher.Decrypt(sealed.CiphertextHex, seed, genOptions()...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "message:    %s (seed %d)\n", msg, seed)
		fmt.Fprintf(out, "ciphertext: %s\n", truncate(sealed.CiphertextHex, 40))
		fmt.Fprintf(out, "decrypted:  %s  match: %v\n\n", plain, plain == msg)
	}
	return nil
}

func demoCompare(cmd *cobra.Command) error {
	reports, err := sweep.Run(cmd.Context(), []int64{1, 100, 12345, 999999, 27644437}, sweep.Options{
		Bits:            1000,
		BlockSize:       cfg.BlockSize,
		Workers:         cfg.Workers,
		MaxRounds:       cfg.MaxRounds,
		TrajectorySteps: cfg.TrajectorySteps,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.SweepTable(reports))
	return nil
}
