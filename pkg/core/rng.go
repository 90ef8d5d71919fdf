package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Uniform returns a uniform value in [lo, hi). Swapped bounds are tolerated.
func (r *RNG) Uniform(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Point returns two independent uniform samples inside the square
// [-half, half) x [-half, half).
func (r *RNG) Point(half float64) (float64, float64) {
	x := r.Uniform(-half, half)
	y := r.Uniform(-half, half)
	return x, y
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
