package engine

import "math/rand"

// DefaultNoiseStdDev is the standard deviation of per-step expression noise.
const DefaultNoiseStdDev = 0.02

// NoiseSource supplies the bounded pseudo-random noise added to each
// gene's target expression during a dynamics step.
//
// Implemented by gaussianNoise (production) and testutil.ZeroNoise /
// testutil.FixedNoise (tests).
type NoiseSource interface {
	Sample() float64
}

type gaussianNoise struct {
	rng    *rand.Rand
	stddev float64
}

// NewGaussianNoise returns a seeded normal noise source with the given
// standard deviation. The same seed reproduces the same sample sequence.
func NewGaussianNoise(stddev float64, seed int64) NoiseSource {
	return &gaussianNoise{rng: rand.New(rand.NewSource(seed)), stddev: stddev}
}

func (g *gaussianNoise) Sample() float64 {
	return g.rng.NormFloat64() * g.stddev
}
