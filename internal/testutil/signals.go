package testutil

import "math/rand"

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	e := 0.0
	for _, v := range x {
		e += v * v
	}
	return e
}

// WindowEnergies splits x into consecutive windows of size n and returns the
// energy of each complete window.
func WindowEnergies(x []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, 0, len(x)/n)
	for start := 0; start+n <= len(x); start += n {
		out = append(out, Energy(x[start:start+n]))
	}
	return out
}
