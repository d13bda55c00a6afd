package random

import "math/rand/v2"

// streamSalt keys every Stream into its own PCG sequence so draws can never
// collide with any other rand.Rand in the process.
const streamSalt uint64 = 0x9e3779b97f4a7c15

// Stream produces a reproducible sequence of draws from a single integer
// seed. Every Stream owns its own generator state: creating or consuming a
// Stream never touches the shared math/rand source, and the same seed yields
// the same sequence on every platform and in every process.
type Stream struct {
	rng *rand.Rand
}

// NewStream creates a stream positioned at the first draw for seed.
func NewStream(seed int64) *Stream {
	return &Stream{
		rng: rand.New(rand.NewPCG(uint64(seed), streamSalt)),
	}
}

// Float returns the next uniform draw in [lo, hi). lo == hi returns lo.
func (s *Stream) Float(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Index returns the next uniform draw in [0, n). Panics if n <= 0, matching
// rand.IntN; callers are expected to reject empty ranges first.
func (s *Stream) Index(n int) int {
	return s.rng.IntN(n)
}

// Float is a one-shot draw: the first Float of a fresh stream for seed.
func Float(seed int64, lo, hi float64) float64 {
	return NewStream(seed).Float(lo, hi)
}

// Index is a one-shot draw: the first Index of a fresh stream for seed.
func Index(seed int64, n int) int {
	return NewStream(seed).Index(n)
}

// Unit is a one-shot uniform draw in [0, 1).
func Unit(seed int64) float64 {
	return NewStream(seed).Float(0, 1)
}
