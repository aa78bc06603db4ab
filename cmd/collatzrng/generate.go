package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/cipher"
	"github.com/san-kum/collatzrng/internal/encoding"
	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/metrics"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/storage"
	"github.com/san-kum/collatzrng/internal/trajectory"
	"github.com/san-kum/collatzrng/internal/viz"
)

const lineWidth = 64

func bitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits",
		Short: "generate balanced bits",
		Args:  cobra.NoArgs,
		RunE:  runBits,
	}
	cmd.Flags().BoolVar(&rawOutput, "raw", false, "print combined bits before extraction")
	cmd.Flags().BoolVar(&hexOutput, "hex", false, "print the stream as hex")
	cmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")
	cmd.Flags().StringVar(&label, "label", "bits", "label for a saved run")
	return cmd
}

func runBits(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	ms := metrics.Default()
	gen, err := generator.New(cfg.Seed, append(genOptions(), generator.WithMetrics(ms...))...)
	if err != nil {
		return err
	}

	var bits rng.Bits
	if rawOutput {
		bits = gen.RawBits(cfg.Bits)
	} else {
		bits, err = gen.BalancedBits(cfg.Bits)
		if err != nil {
			return err
		}
	}

	if hexOutput {
		fmt.Fprintln(out, encoding.BitsToHex(bits))
	} else {
		printBits(cmd, bits)
	}

	s := generator.Summarize(bits)
	raw, _ := gen.Counts()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "seed: %d  sub-seed: 0x%04X\n", gen.Seed(), gen.SubSeed())
	fmt.Fprintf(out, "bits: %s  ones: %s (%.2f%%)  zeros: %s (%.2f%%)  balance: %.4f\n",
		humanize.Comma(int64(s.Total)),
		humanize.Comma(int64(s.Ones)), s.OnesRatio*100,
		humanize.Comma(int64(s.Zeros)), s.ZerosRatio*100,
		s.Balance)
	fmt.Fprintf(out, "raw bits drawn: %s in %d rounds\n", humanize.Comma(int64(raw)), gen.Rounds())
	if !rawOutput {
		fmt.Fprintf(out, "metrics: %s\n", metricsLine(metrics.Snapshot(ms)))
	}
	if gen.Collapsing() {
		fmt.Fprintln(out, "warning: lfsr sub-seed collapses; stream is the logistic map alone")
	}

	if !saveRun {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	report := runReport(bits)
	id, err := st.Save(storage.Run{
		Label:      label,
		Seed:       gen.Seed(),
		SubSeed:    gen.SubSeed(),
		Collapsing: gen.Collapsing(),
		RawBits:    raw,
		Bits:       bits,
		Report:     &report,
		Metrics:    metrics.Snapshot(ms),
	})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Fprintf(out, "saved: %s\n", id)
	return nil
}

func printBits(cmd *cobra.Command, bits rng.Bits) {
	out := cmd.OutOrStdout()
	s := bits.String()
	for start := 0; start < len(s); start += lineWidth {
		end := min(start+lineWidth, len(s))
		fmt.Fprintf(out, "[%5d-%5d] %s\n", start, end-1, s[start:end])
	}
}

func bytesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bytes",
		Short: "generate bytes from balanced bits",
		Args:  cobra.NoArgs,
		RunE:  runBytes,
	}
	cmd.Flags().IntVarP(&byteCount, "count", "n", 16, "number of bytes")
	return cmd
}

func runBytes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if byteCount <= 0 {
		return fmt.Errorf("byte count must be positive, got %d", byteCount)
	}
	gen, err := generator.New(cfg.Seed, genOptions()...)
	if err != nil {
		return err
	}
	b, err := gen.Bytes(byteCount)
	if err != nil {
		return err
	}

	values := make([]string, len(b))
	for i, v := range b {
		values[i] = fmt.Sprint(v)
	}
	fmt.Fprintf(out, "dec: %s\n", strings.Join(values, " "))
	fmt.Fprintf(out, "hex: %x\n", b)
	return nil
}

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "derive hex keys from the seed",
		Args:  cobra.NoArgs,
		RunE:  runKey,
	}
	cmd.Flags().IntSliceVar(&keyLengths, "lengths", nil, "key lengths in bytes (default --key-bytes)")
	return cmd
}

// runKey derives every length from a fresh generator, so longer keys extend
// shorter ones.
func runKey(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	lengths := keyLengths
	if len(lengths) == 0 {
		lengths = []int{cfg.KeyBytes}
	}

	for _, n := range lengths {
		if n <= 0 {
			return fmt.Errorf("key length must be positive, got %d", n)
		}
		gen, err := generator.New(cfg.Seed, genOptions()...)
		if err != nil {
			return err
		}
		key, err := gen.KeyHex(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%4d-bit  %s\n", n*8, key)
	}
	return nil
}

func trajectoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "inspect the 3n+1 trajectory behind the lfsr sub-seed",
		Args:  cobra.NoArgs,
		RunE:  runTrajectory,
	}
	cmd.Flags().IntVar(&showValues, "values", 15, "number of leading values to print")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "plot log2 of the trajectory")
	return cmd
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	m, err := trajectory.Walk(cfg.Seed, cfg.TrajectorySteps)
	if err != nil {
		return err
	}

	values := m.Values()
	parity := m.Parity()

	head := make([]string, 0, max(showValues, 0))
	for i := 0; i < len(values) && i < showValues; i++ {
		head = append(head, values[i].String())
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v.Cmp(peak) > 0 {
			peak = v
		}
	}

	fmt.Fprintf(out, "seed: %d\n", m.Seed())
	fmt.Fprintf(out, "length: %d values (%d steps)\n", len(values), m.Steps())
	fmt.Fprintf(out, "reached one: %v\n", m.ReachedOne())
	fmt.Fprintf(out, "peak: %s\n", peak)
	fmt.Fprintf(out, "first %d: %s\n", len(head), strings.Join(head, " "))
	fmt.Fprintf(out, "parity: %s\n", truncate(parity.String(), lineWidth))
	fmt.Fprintf(out, "ones ratio: %.2f%%\n", float64(parity.Ones())/float64(len(parity))*100)
	sub := m.SubSeed()
	fmt.Fprintf(out, "sub-seed: 0x%04X (%016b)\n", sub, sub)

	if showPlot && len(values) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotTrajectory(values))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [message]",
		Short: "xor a message with the keystream for --seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncrypt,
	}
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sealed, err := cipher.Encrypt(args[0], cfg.Seed, genOptions()...)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	fmt.Fprintf(out, "ciphertext: %s\n", sealed.CiphertextHex)
	fmt.Fprintf(out, "keystream:  %s\n", sealed.KeystreamHex)
	return nil
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [hex]",
		Short: "recover a message encrypted with --seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecrypt,
	}
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	plain, err := cipher.Decrypt(args[0], cfg.Seed, genOptions()...)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), plain)
	return nil
}
