package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussianNoiseReproducible(t *testing.T) {
	a := NewGaussianNoise(0.02, 42)
	b := NewGaussianNoise(0.02, 42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Sample(), b.Sample())
	}
}

func TestGaussianNoiseSeedMatters(t *testing.T) {
	a := NewGaussianNoise(0.02, 1)
	b := NewGaussianNoise(0.02, 2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Sample() != b.Sample() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestGaussianNoiseZeroStdDev(t *testing.T) {
	src := NewGaussianNoise(0, 1)
	for i := 0; i < 10; i++ {
		assert.Zero(t, src.Sample())
	}
}
