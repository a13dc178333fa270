// internal/rng/rng.go

// Package rng provides a seeded, deterministic pseudo-random stream used for
// reproducible test-case generation. Given the same seed string and the same
// sequence of calls, a Stream produces bit-for-bit identical results on every
// platform, which is what makes evaluation runs regression-testable.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// ErrEmptyPool is returned when a selection is requested from an empty pool.
var ErrEmptyPool = errors.New("rng: pick from empty pool")

// Linear-congruential constants (Numerical Recipes). The modulus is the
// natural uint32 wraparound.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Stream is a deterministic random stream. All draw methods advance the same
// internal state, so the sequence of calls is part of the contract: two runs
// that interleave calls differently will diverge. A Stream must not be shared
// across goroutines.
type Stream struct {
	state uint32
}

// New derives a Stream from a seed string by hashing it and taking the first
// four bytes of the digest as the initial state.
func New(seed string) *Stream {
	sum := sha256.Sum256([]byte(seed))
	return &Stream{state: binary.BigEndian.Uint32(sum[:4])}
}

// next advances the LCG one step and returns the new state.
func (s *Stream) next() uint32 {
	s.state = s.state*lcgMultiplier + lcgIncrement
	return s.state
}

// Real returns a uniform float in [0, 1).
func (s *Stream) Real() float64 {
	return float64(s.next()) / (1 << 32)
}

// Int returns a uniform integer in [min, max] inclusive. If max < min the
// bounds are swapped.
func (s *Stream) Int(min, max int) int {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return int(s.Real()*float64(span)) + min
}

// Bool returns true with probability p. Values outside [0,1] saturate.
func (s *Stream) Bool(p float64) bool {
	return s.Real() < p
}

// Pick returns a uniformly selected element of pool, or ErrEmptyPool if the
// pool is empty.
func Pick[T any](s *Stream, pool []T) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, ErrEmptyPool
	}
	return pool[s.Int(0, len(pool)-1)], nil
}

// Shuffle returns a new slice containing the elements of items in a
// Fisher-Yates order drawn from the stream. The input slice is not modified.
func Shuffle[T any](s *Stream, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.Int(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
