// Package entropy provides the single deterministic randomness source for the
// simulation. All stochastic decisions draw from one seeded stream so that a
// given (state, seed) pair always replays identically.
package entropy

import (
	"encoding/binary"
	"math/rand"
)

// Source is a seeded random stream with a draw counter. The counter lets a
// restored save fast-forward to the exact stream position it was persisted at.
type Source struct {
	seed  int64
	draws uint64
	rng   *rand.Rand
}

// NewSource creates a source positioned at the start of the stream for seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Restore recreates a source at a previously recorded stream position.
func Restore(seed int64, draws uint64) *Source {
	s := NewSource(seed)
	for i := uint64(0); i < draws; i++ {
		s.rng.Uint64()
	}
	s.draws = draws
	return s
}

// Seed returns the seed the stream was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Draws returns how many values have been consumed from the stream.
func (s *Source) Draws() uint64 {
	return s.draws
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	s.draws++
	return float64(s.rng.Uint64()>>11) / float64(1<<53)
}

// IntN returns a uniform int in [0, n). Panics if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("entropy: IntN with non-positive bound")
	}
	return int(s.Float() * float64(n))
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.IntN(hi-lo+1)
}

// FloatRange returns a uniform float64 in [lo, hi).
func (s *Source) FloatRange(lo, hi float64) float64 {
	return lo + s.Float()*(hi-lo)
}

// Chance draws once and reports whether the draw fell under p.
func (s *Source) Chance(p float64) bool {
	return s.Float() < p
}

// Read fills p with pseudo-random bytes, satisfying io.Reader so the source
// can feed uuid.NewRandomFromReader. Each 8-byte chunk costs one draw.
func (s *Source) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		s.draws++
		binary.LittleEndian.PutUint64(buf[:], s.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
