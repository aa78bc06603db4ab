package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/collatzrng/internal/config"
	"github.com/san-kum/collatzrng/internal/generator"
)

var (
	configFile string
	preset     string
	dataDir    string
	logLevel   string
	logFormat  string
	seed       int64
	bitCount   int
	keyBytes   int
	blockSize  int
	maxRounds  int
	trajSteps  int
	workers    int

	rawOutput  bool
	hexOutput  bool
	saveRun    bool
	jsonOutput bool
	label      string
	byteCount  int
	keyLengths []int
	showPlot   bool
	svgDir     string
	showValues int
	fromRun    string
	seedFrom   int64
	seedCount  int
	rMin       float64
	rMax       float64
	rSteps     int
	chunk      int
	window     int
)

// cfg and logger are resolved once per invocation in setup.
var (
	cfg    *config.Config
	logger zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "collatzrng",
		Short:             "trajectory-seeded chaotic bit generator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a named seed preset")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "generator seed")
	pf.IntVar(&bitCount, "bits", config.DefaultBits, "number of balanced bits")
	pf.IntVar(&keyBytes, "key-bytes", config.DefaultKeyBytes, "key length in bytes")
	pf.IntVar(&blockSize, "block-size", config.DefaultBlockSize, "block chi-square block size")
	pf.IntVar(&maxRounds, "max-rounds", config.DefaultMaxRounds, "extraction round cap per request")
	pf.IntVar(&trajSteps, "trajectory-steps", config.DefaultTrajectorySteps, "trajectory step cap")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "parallel sweep workers")

	rootCmd.AddCommand(
		bitsCmd(), bytesCmd(), keyCmd(), trajectoryCmd(), encryptCmd(), decryptCmd(),
		testCmd(), sweepCmd(), scenarioCmd(), listCmd(), showCmd(), plotCmd(),
		chaosCmd(), spectrumCmd(), liveCmd(), presetsCmd(), demoCmd(),
	)
	return rootCmd
}

// setup merges the config file, COLLATZRNG_* variables, the preset and any
// flag the user set, in that order, and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Resolve(configFile)
	if err != nil {
		return err
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(c)
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}
	if flags.Changed("seed") {
		c.Seed = seed
		c.Seeds = nil
	}
	if flags.Changed("bits") {
		c.Bits = bitCount
	}
	if flags.Changed("key-bytes") {
		c.KeyBytes = keyBytes
	}
	if flags.Changed("block-size") {
		c.BlockSize = blockSize
	}
	if flags.Changed("max-rounds") {
		c.MaxRounds = maxRounds
	}
	if flags.Changed("trajectory-steps") {
		c.TrajectorySteps = trajSteps
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := newLogger(cmd.ErrOrStderr(), c.LogFormat, c.LogLevel)
	if err != nil {
		return err
	}
	cfg = c
	logger = l
	return nil
}

func newLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if i == nil {
					return "-"
				}
				return strings.ToUpper(fmt.Sprint(i))
			},
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func genOptions() []generator.Option {
	return []generator.Option{
		generator.WithMaxRounds(cfg.MaxRounds),
		generator.WithTrajectorySteps(cfg.TrajectorySteps),
		generator.WithLogger(logger),
	}
}
