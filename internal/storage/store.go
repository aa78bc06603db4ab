// Package storage persists generated streams: one directory per run holding
// metadata.json and bits.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/stattest"
)

const (
	metadataFile = "metadata.json"
	bitsFile     = "bits.csv"
)

// ErrRunNotFound is returned by Load and LoadBits for an unknown run id.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Run is what Save persists. Report and Metrics are optional.
type Run struct {
	Label      string
	Seed       int64
	SubSeed    uint16
	Collapsing bool
	RawBits    int
	Bits       rng.Bits
	Report     *stattest.Report
	Metrics    map[string]float64
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	SubSeed    uint16             `json:"sub_seed"`
	Collapsing bool               `json:"collapsing,omitempty"`
	Bits       int                `json:"bits"`
	RawBits    int                `json:"raw_bits"`
	Stats      generator.Stats    `json:"stats"`
	Report     *stattest.Report   `json:"report,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a new run directory and returns its id.
func (s *Store) Save(run Run) (string, error) {
	label := run.Label
	if label == "" {
		label = "bits"
	}
	runID := fmt.Sprintf("%s_%d_%s", label, run.Seed, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		Seed:       run.Seed,
		SubSeed:    run.SubSeed,
		Collapsing: run.Collapsing,
		Bits:       len(run.Bits),
		RawBits:    run.RawBits,
		Stats:      generator.Summarize(run.Bits),
		Report:     run.Report,
		Metrics:    run.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeBits(filepath.Join(runDir, bitsFile), run.Bits); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// bits.csv carries the running ones count so plots need no recomputation.
func writeBits(path string, bits rng.Bits) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "bit", "ones"}); err != nil {
		return err
	}

	ones := 0
	for i, b := range bits {
		if b != 0 {
			ones++
		}
		row := []string{strconv.Itoa(i), strconv.Itoa(int(b & 1)), strconv.Itoa(ones)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadBits reads the bit column of a run's bits.csv.
func (s *Store) LoadBits(runID string) (rng.Bits, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, bitsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return rng.Bits{}, nil
	}

	bits := make(rng.Bits, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		bits = append(bits, uint8(v&1))
	}
	return bits, nil
}
