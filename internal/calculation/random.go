package calculation

import (
	"math"
	"math/rand/v2"
)

// maxZeroRedraws bounds the u1 == 0 re-draw loop in Normal.
const maxZeroRedraws = 64

// UniformSource yields uniform samples in [0, 1). *rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Each (seed, stream) pair is an
// independent sequence, so simulation i can own stream i.
func NewSource(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Normal draws from N(mean, stdDev) using the Box-Muller transform.
// Two uniforms are consumed per call unless u1 has to be re-drawn.
func Normal(src UniformSource, mean, stdDev float64) float64 {
	u1 := src.Float64()
	for i := 0; u1 == 0 && i < maxZeroRedraws; i++ {
		u1 = src.Float64()
	}
	if u1 == 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	u2 := src.Float64()
	return mean + stdDev*boxMullerTransform(u1, u2)
}

// boxMullerTransform maps two uniforms in (0, 1) to a standard normal value
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
