package core

import "math"

// denormalFloor is the magnitude below which recursive state is zeroed.
const denormalFloor = 1e-30

// Clamp limits value to the inclusive range spanned by lo and hi, in either
// order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(value, lo), hi)
}

// Clamp01 limits a knob or coefficient to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return Clamp(value, 0, 1)
}

// FlushDenormals returns 0 for |x| below 1e-30. Feedback filter states pass
// through it once per block.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// LinearToDB converts an amplitude ratio to dB (20*log10).
// Zero gives -Inf, negative input NaN.
func LinearToDB(linear float64) float64 {
	return 2 * LinearPowerToDB(linear)
}

// LinearPowerToDB converts a power ratio to dB (10*log10).
// Zero gives -Inf, negative input NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0 || math.IsNaN(power):
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}
