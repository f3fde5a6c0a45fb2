package ir

import (
	"fmt"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

// Response is a captured stereo impulse response.
type Response struct {
	Left       []float64
	Right      []float64
	SampleRate float64
}

// Capture resets m, feeds a unit impulse into its left input and returns
// length frames of pure wet output, processed in blocks of blockSize. The
// model's amount is set to 1 for the capture and restored afterwards.
func Capture(m reverb.Model, length, blockSize int) (Response, error) {
	if length <= 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	prev := m.Amount()
	m.SetAmount(1)
	defer m.SetAmount(prev)
	m.Reset()

	in := make([]fdn.Frame, length)
	in[0].Left = 1

	// out starts as the dry input, so amount 1 leaves only the wet signal.
	out := make([]fdn.Frame, length)
	copy(out, in)

	core.Blocks(length, blockSize, func(start, end int) {
		m.Process(in[start:end], out[start:end])
	})

	resp := Response{
		Left:       make([]float64, length),
		Right:      make([]float64, length),
		SampleRate: m.SampleRate(),
	}
	for i, f := range out {
		resp.Left[i] = f.Left
		resp.Right[i] = f.Right
	}

	return resp, nil
}
