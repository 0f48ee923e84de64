// Package randutil centralises how the simulator builds and draws from its
// random sources. Every stochastic call site takes a *rand.Rand explicitly;
// nothing in this module touches a package-global generator.
package randutil

import (
	"math"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with splitmix64 so that neighbouring
// seeds (seed, seed+1, ...) still produce unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// IntRange returns a uniform integer in the closed range [lo, hi].
func IntRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// Normal draws from a normal distribution with the given mean and standard
// deviation.
func Normal(rng *rand.Rand, mean, stdDev float64) float64 {
	return rng.NormFloat64()*stdDev + mean
}

// TruncNormal draws from Normal and truncates toward zero.
func TruncNormal(rng *rand.Rand, mean, stdDev float64) int {
	return int(math.Trunc(Normal(rng, mean, stdDev)))
}

// Bernoulli reports whether a uniform draw falls below p.
func Bernoulli(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Reader adapts a *rand.Rand into an io.Reader so byte-oriented consumers
// (id generators) can share the simulation's deterministic stream.
type Reader struct {
	rng *rand.Rand
}

// NewReader wraps rng.
func NewReader(rng *rand.Rand) *Reader {
	return &Reader{rng: rng}
}

// Read fills p with pseudo-random bytes. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
