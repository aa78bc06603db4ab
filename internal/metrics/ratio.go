package metrics

import "github.com/san-kum/collatzrng/internal/rng"

// OnesRatio is the fraction of ones among extracted bits.
type OnesRatio struct {
	name  string
	ones  int
	total int
}

func NewOnesRatio() *OnesRatio {
	return &OnesRatio{
		name: "ones_ratio",
	}
}

func (o *OnesRatio) Name() string {
	return o.name
}

func (o *OnesRatio) Observe(raw, extracted rng.Bits) {
	o.ones += extracted.Ones()
	o.total += len(extracted)
}

func (o *OnesRatio) Value() float64 {
	if o.total == 0 {
		return 0
	}
	return float64(o.ones) / float64(o.total)
}

func (o *OnesRatio) Reset() {
	o.ones = 0
	o.total = 0
}

// RawBias is the distance of the raw stream's ones ratio from one half,
// the bias the extractor has to remove.
type RawBias struct {
	name  string
	ones  int
	total int
}

func NewRawBias() *RawBias {
	return &RawBias{name: "raw_bias"}
}

func (r *RawBias) Name() string { return r.name }

func (r *RawBias) Observe(raw, extracted rng.Bits) {
	r.ones += raw.Ones()
	r.total += len(raw)
}

func (r *RawBias) Value() float64 {
	if r.total == 0 {
		return 0
	}
	d := float64(r.ones)/float64(r.total) - 0.5
	if d < 0 {
		return -d
	}
	return d
}

func (r *RawBias) Reset() {
	r.ones = 0
	r.total = 0
}
