// Package generator composes the trajectory-seeded LFSR and the logistic map
// into a debiased bit stream.
package generator

import (
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/san-kum/collatzrng/internal/chaos"
	"github.com/san-kum/collatzrng/internal/extract"
	"github.com/san-kum/collatzrng/internal/lfsr"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/trajectory"
)

const (
	// Overprovision is the raw-to-requested ratio drawn per round.
	Overprovision = 3

	// DefaultMaxRounds caps the balanced-bit loop. A healthy stream needs
	// about two rounds.
	DefaultMaxRounds = 64
)

// Generator owns one LFSR and one logistic map derived from a single seed.
// It is not safe for concurrent use.
type Generator struct {
	seed       int64
	traj       *trajectory.Map
	register   *lfsr.Register
	logistic   *chaos.Logistic
	maxRounds  int
	maxSteps   int
	log        zerolog.Logger
	metrics    []rng.Metric
	last       rng.Bits
	rawCount   int
	balCount   int
	rounds     int
	collapsing bool
}

type Option func(*Generator)

// WithMaxRounds sets the retry cap of BalancedBits. n <= 0 keeps the default.
func WithMaxRounds(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxRounds = n
		}
	}
}

// WithTrajectorySteps sets the trajectory step cap. n <= 0 keeps the default.
func WithTrajectorySteps(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxSteps = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithMetrics attaches metrics observed on every round.
func WithMetrics(ms ...rng.Metric) Option {
	return func(g *Generator) { g.metrics = append(g.metrics, ms...) }
}

// New walks the seed's trajectory, derives the LFSR sub-seed from its parity
// bits and normalizes the same seed into the logistic map.
func New(seed int64, opts ...Option) (*Generator, error) {
	if err := rng.CheckSeed(seed); err != nil {
		return nil, err
	}

	g := &Generator{
		seed:      seed,
		maxRounds: DefaultMaxRounds,
		maxSteps:  trajectory.DefaultMaxSteps,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	traj, err := trajectory.Walk(seed, g.maxSteps)
	if err != nil {
		return nil, err
	}
	logistic, err := chaos.FromSeed(seed)
	if err != nil {
		return nil, err
	}

	sub := traj.SubSeed()
	g.traj = traj
	g.register = lfsr.New(sub)
	g.logistic = logistic
	g.collapsing = lfsr.Collapses(sub)

	g.log = g.log.With().Int64("seed", seed).Logger()
	if g.collapsing {
		g.log.Warn().Uint16("sub_seed", sub).Msg("lfsr sub-seed has an empty tap window; register will drain to zero")
	}

	return g, nil
}

// RawBits pulls count bits from the LFSR and the logistic map in lockstep
// and returns their XOR.
func (g *Generator) RawBits(count int) rng.Bits {
	if count <= 0 {
		return rng.Bits{}
	}
	out := make(rng.Bits, count)
	for i := range out {
		out[i] = g.register.NextBit() ^ g.logistic.NextBit()
	}
	g.rawCount += count
	return out
}

// BalancedBits returns exactly count debiased bits. Each round draws
// Overprovision*count raw bits and extracts them; when the round cap is hit
// first it returns an *rng.ExhaustedError.
func (g *Generator) BalancedBits(count int) (rng.Bits, error) {
	if count <= 0 {
		g.last = rng.Bits{}
		return rng.Bits{}, nil
	}

	result := make(rng.Bits, 0, count+count/2)
	rounds := 0
	for len(result) < count {
		if rounds >= g.maxRounds {
			g.log.Error().Int("requested", count).Int("produced", len(result)).Int("rounds", rounds).Msg("balanced generation exhausted")
			return nil, &rng.ExhaustedError{
				Seed:      g.seed,
				Requested: count,
				Produced:  len(result),
				Rounds:    rounds,
			}
		}

		raw := g.RawBits(count * Overprovision)
		before := len(result)
		result = extract.Append(result, raw)
		rounds++

		for _, m := range g.metrics {
			m.Observe(raw, result[before:])
		}
		g.log.Debug().Int("round", rounds).Int("raw", len(raw)).Int("kept", len(result)-before).Msg("extraction round")
	}
	g.rounds += rounds

	out := result[:count:count]
	g.last = out
	g.balCount += count
	return out.Clone(), nil
}

// Bytes packs 8*count balanced bits into bytes, first bit in the LSB.
// count <= 0 yields an empty slice.
func (g *Generator) Bytes(count int) ([]byte, error) {
	if count <= 0 {
		return []byte{}, nil
	}
	bits, err := g.BalancedBits(count * 8)
	if err != nil {
		return nil, err
	}
	out := make([]byte, count)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b |= rng.Bit(bits[i*8+j]) << uint(j)
		}
		out[i] = b
	}
	return out, nil
}

// KeyHex returns byteLength generated bytes as lowercase hex.
func (g *Generator) KeyHex(byteLength int) (string, error) {
	b, err := g.Bytes(byteLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (g *Generator) Seed() int64 { return g.seed }

// SubSeed returns the LFSR seed derived from the trajectory.
func (g *Generator) SubSeed() uint16 { return g.traj.SubSeed() }

// Collapsing reports whether the LFSR will drain to zero for this seed.
func (g *Generator) Collapsing() bool { return g.collapsing }

// Trajectory returns the walk the sub-seed was derived from.
func (g *Generator) Trajectory() *trajectory.Map { return g.traj }

// Counts returns cumulative raw and balanced bits produced.
func (g *Generator) Counts() (raw, balanced int) {
	return g.rawCount, g.balCount
}

// Rounds returns the total extraction rounds run by successful requests.
func (g *Generator) Rounds() int { return g.rounds }
