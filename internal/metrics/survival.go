package metrics

import "github.com/san-kum/collatzrng/internal/rng"

// Survival is the fraction of raw bits that survive extraction. An unbiased
// independent stream keeps about one in four.
type Survival struct {
	name      string
	raw       int
	extracted int
}

func NewSurvival() *Survival {
	return &Survival{
		name: "survival",
	}
}

func (s *Survival) Name() string {
	return s.name
}

func (s *Survival) Observe(raw, extracted rng.Bits) {
	s.raw += len(raw)
	s.extracted += len(extracted)
}

func (s *Survival) Value() float64 {
	if s.raw == 0 {
		return 0
	}
	return float64(s.extracted) / float64(s.raw)
}

func (s *Survival) Reset() {
	s.raw = 0
	s.extracted = 0
}
