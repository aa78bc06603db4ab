package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/collatzrng/internal/rng"
)

// ExportData is the single-document JSON form of a run.
type ExportData struct {
	RunMetadata
	Stream string `json:"stream"`
}

// ExportJSON writes a run's metadata and its bits as a '0'/'1' string.
func ExportJSON(w io.Writer, meta *RunMetadata, bits rng.Bits) error {
	data := ExportData{
		RunMetadata: *meta,
		Stream:      bits.String(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export loads a run and writes it with ExportJSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	bits, err := s.LoadBits(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, bits)
}
