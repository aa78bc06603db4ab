package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/collatzrng/internal/stattest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestKeyLengthsSharePrefix(t *testing.T) {
	out, err := execute(t, "--seed", "12345678", "key", "--lengths", "8,16")
	require.NoError(t, err)

	assert.Contains(t, out, "  64-bit  15fbb176fc0a1eeb\n")
	assert.Contains(t, out, " 128-bit  15fbb176fc0a1eebf7a3f9e48a7634fc\n")
}

func TestBitsOutput(t *testing.T) {
	out, err := execute(t, "--seed", "12345", "--bits", "64", "bits")
	require.NoError(t, err)

	assert.Contains(t, out, "[    0-   63] 1000110100011111111110000001000100010100000100100100100000101110")
	assert.Contains(t, out, "sub-seed: 0x0929")
	assert.Contains(t, out, "metrics: ")
}

func TestEncryptDecrypt(t *testing.T) {
	out, err := execute(t, "--seed", "27644437", "encrypt", "Merhaba Dünya!")
	require.NoError(t, err)

	var ct string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "ciphertext: "); ok {
			ct = rest
		}
	}
	require.NotEmpty(t, ct)

	out, err = execute(t, "--seed", "27644437", "decrypt", ct)
	require.NoError(t, err)
	assert.Equal(t, "Merhaba Dünya!\n", out)
}

func TestBytesRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []string{"0", "-1"} {
		_, err := execute(t, "bytes", "--count="+n)
		assert.ErrorContains(t, err, "byte count must be positive", "count %s", n)
	}

	out, err := execute(t, "--seed", "42", "bytes", "-n", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "dec: 197 46 153 198\n")
}

func TestDecryptInvalidHex(t *testing.T) {
	_, err := execute(t, "decrypt", "zz")
	assert.Error(t, err)
}

func TestTestCommandJSON(t *testing.T) {
	out, err := execute(t, "--seed", "12345", "--bits", "10000", "test", "--json")
	require.NoError(t, err)

	var report stattest.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4975, report.Frequency.Ones)
	assert.Equal(t, 5029, report.Runs.Runs)
	assert.Equal(t, stattest.VerdictSuccess, report.Scorecard.Verdict)
}

func TestPrecedence(t *testing.T) {
	t.Setenv("COLLATZRNG_BITS", "2048")
	t.Setenv("COLLATZRNG_WORKERS", "2")

	_, err := execute(t, "--preset", "keys", "--seed", "7", "presets")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []int64{7}, cfg.SweepSeeds())
	assert.Equal(t, 512, cfg.Bits, "preset overrides env")
	assert.Equal(t, 64, cfg.KeyBytes)
	assert.Equal(t, 2, cfg.Workers, "env survives when preset and flags are silent")
}

func TestUnknownPreset(t *testing.T) {
	_, err := execute(t, "--preset", "nope", "presets")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestSaveListShow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	out, err := execute(t, "--data", dir, "--seed", "12345", "--bits", "256", "bits", "--save", "--label", "demo")
	require.NoError(t, err)

	var id string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "saved: "); ok {
			id = rest
		}
	}
	require.True(t, strings.HasPrefix(id, "demo_12345_"), "run id %q", id)

	out, err = execute(t, "--data", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "--data", dir, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 12345")

	out, err = execute(t, "--data", dir, "show", id, "--json")
	require.NoError(t, err)
	var exported map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Equal(t, id, exported["id"])

	out, err = execute(t, "--data", dir, "test", "--run", id)
	require.NoError(t, err)
	assert.Contains(t, out, "run "+id)

	svgDir := filepath.Join(t.TempDir(), "svg")
	out, err = execute(t, "--data", dir, "plot", id, "--svg", svgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "peak ratio:")
	assert.FileExists(t, filepath.Join(svgDir, "ratio.svg"))
	assert.FileExists(t, filepath.Join(svgDir, "raster.svg"))
}

func TestSweepSeedsFromArgs(t *testing.T) {
	out, err := execute(t, "--bits", "512", "sweep", "1", "100", "--json")
	require.NoError(t, err)

	var result struct {
		Reports []struct {
			Seed       int64 `json:"seed"`
			Collapsing bool  `json:"collapsing"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Reports, 2)
	assert.Equal(t, int64(1), result.Reports[0].Seed)
	assert.True(t, result.Reports[0].Collapsing)
	assert.Equal(t, int64(100), result.Reports[1].Seed)
}

func TestSweepRejectsBadSeed(t *testing.T) {
	_, err := execute(t, "sweep", "0")
	assert.Error(t, err)
	_, err = execute(t, "sweep", "abc")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "json", "warn")
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	l, err = newLogger(&buf, "text", "info")
	require.NoError(t, err)
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "INFO")

	_, err = newLogger(&buf, "text", "loud")
	assert.Error(t, err)
}

func TestTrajectoryCommand(t *testing.T) {
	out, err := execute(t, "--seed", "27", "trajectory", "--values", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "length: 112 values (111 steps)")
	assert.Contains(t, out, "first 5: 27 82 41 124 62")
	assert.Contains(t, out, "peak: 9232")
}
