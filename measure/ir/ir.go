package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by IR capture and analysis.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
	ErrInvalidLength     = errors.New("ir: capture length must be positive")
)

// Metrics holds impulse response analysis results. Times are in seconds.
type Metrics struct {
	RT60       float64
	EDT        float64
	T20        float64
	T30        float64
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio in [0, 1]
	CenterTime float64
	PeakIndex  int
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) validate(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes all metrics from the absolute peak onward.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.validate(ir); err != nil {
		return Metrics{}, err
	}

	peak := findPeak(ir)
	sq := squares(ir[peak:])
	curve := schroeder(sq)

	m := Metrics{
		PeakIndex:  peak,
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
		C50:        clarity(sq, a.boundary(50)),
		C80:        clarity(sq, a.boundary(80)),
		D50:        definition(sq, a.boundary(50)),
		CenterTime: a.centerTime(sq),
	}

	m.RT60 = m.T30
	if m.RT60 <= 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// squares returns ir[i]^2.
func squares(ir []float64) []float64 {
	sq := make([]float64, len(ir))
	vecmath.MulBlock(sq, ir, ir)
	return sq
}

func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}

// FindImpulseStart returns the first sample within 20 dB of the peak.
func FindImpulseStart(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	threshold := math.Abs(ir[findPeak(ir)]) * 0.1
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, nil
}
