// Package testutil provides deterministic test doubles for the
// expression runtime: silent or scripted noise sources and scripted
// reconfiguration targets.
package testutil

// ZeroNoise is a NoiseSource that always samples 0. Dynamics become
// exactly reproducible with it.
type ZeroNoise struct{}

// Sample implements engine.NoiseSource.
func (ZeroNoise) Sample() float64 { return 0 }

// FixedNoise replays a fixed sample sequence, then zeros.
type FixedNoise struct {
	samples []float64
	idx     int
}

// NewFixedNoise creates a source replaying the given samples in order.
func NewFixedNoise(samples ...float64) *FixedNoise {
	return &FixedNoise{samples: samples}
}

// Sample implements engine.NoiseSource.
func (f *FixedNoise) Sample() float64 {
	if f.idx >= len(f.samples) {
		return 0
	}
	s := f.samples[f.idx]
	f.idx++
	return s
}
