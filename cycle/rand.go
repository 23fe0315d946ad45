package cycle

import (
	"github.com/rotblauer/drivecycle/params"
	"math/rand/v2"
)

// Rand is the random source the generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewRand returns a PCG source seeded with seed.
// A zero seed draws one from the runtime, so runs are not reproducible.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Uniform draws uniformly from r.
func Uniform(rng Rand, r params.Range) float64 {
	return r.Min + (r.Max-r.Min)*rng.Float64()
}

// Coin draws true or false with equal probability.
func Coin(rng Rand) bool {
	return rng.IntN(2) == 1
}
