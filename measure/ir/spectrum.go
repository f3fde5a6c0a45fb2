package ir

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeResponse returns |H[k]| for bins 0..fftSize/2 of ir. The response
// is truncated or zero-padded to fftSize; fftSize <= 0 picks the next power
// of two that holds all of ir.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if fftSize <= 0 {
		fftSize = nextPow2(len(ir))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("ir: fft plan %d: %w", fftSize, err)
	}

	in := make([]complex128, fftSize)
	for i := range min(len(ir), fftSize) {
		in[i] = complex(ir[i], 0)
	}

	spec := make([]complex128, fftSize)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("ir: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// SpreadDB returns the distance in dB between the loudest and quietest bin.
// A perfect all-pass has a spread of 0.
func SpreadDB(mag []float64) float64 {
	if len(mag) == 0 {
		return 0
	}

	lo, hi := math.Inf(1), 0.0
	for _, m := range mag {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}
	if lo <= 0 {
		return math.Inf(1)
	}
	return core.LinearToDB(hi) - core.LinearToDB(lo)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
