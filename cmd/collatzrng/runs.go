package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/analysis"
	"github.com/san-kum/collatzrng/internal/export"
	"github.com/san-kum/collatzrng/internal/storage"
	"github.com/san-kum/collatzrng/internal/viz"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}
	fmt.Fprintln(out, viz.RunsTable(runs))
	return nil
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "export metadata and stream as json")
	return cmd
}

func showRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(cfg.DataDir)

	if jsonOutput {
		return st.Export(out, args[0])
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "saved: %s (%s)\n", meta.Timestamp.Format("2006-01-02 15:04:05"), humanize.Time(meta.Timestamp))
	fmt.Fprintf(out, "seed: %d  sub-seed: 0x%04X\n", meta.Seed, meta.SubSeed)
	fmt.Fprintf(out, "bits: %s  raw bits: %s  balance: %.4f\n",
		humanize.Comma(int64(meta.Bits)), humanize.Comma(int64(meta.RawBits)), meta.Stats.Balance)
	if len(meta.Metrics) > 0 {
		fmt.Fprintf(out, "metrics: %s\n", metricsLine(meta.Metrics))
	}
	if meta.Report != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.ReportTable(*meta.Report))
	}
	return nil
}

func plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the running ones ratio and spectrum of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().StringVar(&svgDir, "svg", "", "also write ratio.svg and raster.svg into this directory")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	bits, err := st.LoadBits(args[0])
	if err != nil {
		return err
	}
	if len(bits) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "samples: %s\n\n", humanize.Comma(int64(len(bits))))
	fmt.Fprintln(out, viz.PlotRunningRatio(bits))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.BitRaster(bits, 64, 8))
	fmt.Fprintln(out)

	spectrum := analysis.BitSpectrum(bits)
	fmt.Fprintln(out, viz.PlotSpectrum(spectrum))
	fmt.Fprintf(out, "peak ratio: %.2f\n", analysis.PeakRatio(spectrum))

	if svgDir == "" {
		return nil
	}
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		return err
	}
	files := map[string]string{
		"ratio.svg":  export.SeriesSVG(viz.RunningRatio(bits), 0.5, 800, 200),
		"raster.svg": export.RasterSVG(bits, 128, 4),
	}
	for _, name := range []string{"ratio.svg", "raster.svg"} {
		path := filepath.Join(svgDir, name)
		if err := export.WriteFile(path, files[name]); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}
