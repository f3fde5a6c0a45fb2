package fdn

import "math"

// LFO identifies one oscillator of an engine's modulation bank.
type LFO int

// Oscillators available in every engine.
const (
	LFO1 LFO = iota
	LFO2

	NumLFOs = 2
)

type oscillator struct {
	phase     float64
	increment float64
	value     float64
}

func (o *oscillator) advance() {
	o.phase += o.increment
	o.phase -= math.Floor(o.phase)
	o.value = math.Sin(2 * math.Pi * o.phase)
}

// SetLFOFrequency sets the rate of oscillator id in cycles per sample
// (Hz divided by the sample rate). The phase is kept.
func (e *Engine) SetLFOFrequency(id LFO, cyclesPerSample float64) {
	if id < 0 || int(id) >= NumLFOs {
		return
	}
	e.lfos[id].increment = cyclesPerSample
}

// LFOFrequency returns the rate of oscillator id in cycles per sample.
func (e *Engine) LFOFrequency(id LFO) float64 {
	if id < 0 || int(id) >= NumLFOs {
		return 0
	}
	return e.lfos[id].increment
}

// LFOValue returns the current output of oscillator id in [-1, 1].
func (e *Engine) LFOValue(id LFO) float64 {
	if id < 0 || int(id) >= NumLFOs {
		return 0
	}
	return e.lfos[id].value
}
