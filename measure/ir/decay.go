package ir

import (
	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// schroederFloorDB is reported where the remaining energy is exactly zero.
const schroederFloorDB = -200

// SchroederIntegral returns the backward-integrated energy decay curve in dB,
// normalized to 0 dB at the first sample:
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroeder(squares(ir)), nil
}

func schroeder(sq []float64) []float64 {
	curve := make([]float64, len(sq))

	var sum float64
	for i := len(sq) - 1; i >= 0; i-- {
		sum += sq[i]
		curve[i] = sum
	}

	total := curve[0]
	if total <= 0 {
		return curve
	}

	for i, rest := range curve {
		if rest <= 0 {
			curve[i] = schroederFloorDB
			continue
		}
		curve[i] = core.LinearPowerToDB(rest / total)
	}

	return curve
}

// reverbTime fits a line to the decay curve between the first samples at or
// below startDB and endDB and extrapolates it to -60 dB. It returns 0 when
// the curve never reaches endDB or does not decay.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}

	if start < 0 || end-start < 1 {
		return 0
	}

	ys := curve[start : end+1]
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i) / a.SampleRate
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope >= 0 {
		return 0
	}

	return -60 / slope
}

// RT60 returns the reverberation time, from T30 when the response decays far
// enough and from T20 otherwise.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	curve := schroeder(squares(ir))
	if rt := a.reverbTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// EDT returns the early decay time, extrapolated from the first 10 dB.
func (a *Analyzer) EDT(ir []float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}

	if rt := a.reverbTime(schroeder(squares(ir)), 0, -10); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}
