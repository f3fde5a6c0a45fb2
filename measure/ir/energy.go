package ir

import (
	"math"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
)

func (a *Analyzer) boundary(ms float64) int {
	return int(math.Round(ms * 0.001 * a.SampleRate))
}

func (a *Analyzer) checkTime(ir []float64, ms float64) error {
	if err := a.validate(ir); err != nil {
		return err
	}
	if ms <= 0 {
		return ErrInvalidTime
	}
	return nil
}

// split returns the energy before and from sample n.
func split(sq []float64, n int) (early, late float64) {
	n = min(max(n, 0), len(sq))
	for _, e := range sq[:n] {
		early += e
	}
	for _, e := range sq[n:] {
		late += e
	}
	return early, late
}

// Definition returns the fraction of energy arriving before ms milliseconds.
func (a *Analyzer) Definition(ir []float64, ms float64) (float64, error) {
	if err := a.checkTime(ir, ms); err != nil {
		return 0, err
	}
	return definition(squares(ir), a.boundary(ms)), nil
}

func definition(sq []float64, n int) float64 {
	early, late := split(sq, n)
	if early+late <= 0 {
		return 0
	}
	return early / (early + late)
}

// Clarity returns the early-to-late energy ratio at ms milliseconds in dB.
func (a *Analyzer) Clarity(ir []float64, ms float64) (float64, error) {
	if err := a.checkTime(ir, ms); err != nil {
		return 0, err
	}
	return clarity(squares(ir), a.boundary(ms)), nil
}

func clarity(sq []float64, n int) float64 {
	early, late := split(sq, n)
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(early / late)
}

// CenterTime returns the energy centroid of ir in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.validate(ir); err != nil {
		return 0, err
	}
	return a.centerTime(squares(ir)), nil
}

func (a *Analyzer) centerTime(sq []float64) float64 {
	var num, den float64
	for i, e := range sq {
		num += float64(i) * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den / a.SampleRate
}
