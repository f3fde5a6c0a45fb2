package reverb

import (
	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/dsp/interp"
)

const (
	shimmerFeedback = 2.0

	defaultShimmerTime      = 0.5
	defaultShimmerLowpass   = 0.7
	defaultShimmerDiffusion = 0.625
)

// Shimmer is the Griesinger topology: four input diffusers feeding two
// loops of modulated long all-pass, damping and two short all-passes. Each
// loop writes into the other loop's long line and its output is the wet
// signal of one channel. The slow modulation of the long lines gives the
// chorus-like shimmer.
type Shimmer struct {
	base

	time    float64
	lowpass float64

	kTime    float64
	kDamp    float64
	kDiff    float64
	kNegDiff float64

	damp1 float64
	damp2 float64

	input fdn.Program
	loop1 fdn.Program
	loop2 fdn.Program
}

var _ Model = (*Shimmer)(nil)

// NewShimmer builds a shimmer reverb over ws.
func NewShimmer(ws *delay.Workspace, opts ...fdn.Option) (*Shimmer, error) {
	ap1 := fdn.NewAllPass(150)
	ap2 := fdn.NewAllPass(214)
	ap3 := fdn.NewAllPass(319)
	ap4 := fdn.NewAllPass(527)

	// The long lines are read up to base+excursion, one sample short of
	// capacity; the headroom covers the interpolation kernel.
	reach := fdn.WithHeadroom(interp.Hermite.Reach())

	dap1a := fdn.NewAllPass(2182)
	dap1b := fdn.NewAllPass(2690)
	del1 := fdn.NewAllPass(4501, reach)

	dap2a := fdn.NewAllPass(2525)
	dap2b := fdn.NewAllPass(2197)
	del2 := fdn.NewAllPass(6312, reach)

	b, err := newBase("shimmer", ws, opts, defaultShimmerDiffusion,
		ap1, ap2, ap3, ap4,
		dap1a, dap1b, del1,
		dap2a, dap2b, del2,
	)
	if err != nil {
		return nil, err
	}

	s := &Shimmer{
		base:    b,
		time:    defaultShimmerTime,
		lowpass: defaultShimmerLowpass,
	}

	s.input = fdn.Program{
		fdn.Diffuse(ap1, fdn.Ref(&s.kDiff)),
		fdn.Diffuse(ap2, fdn.Ref(&s.kDiff)),
		fdn.Diffuse(ap3, fdn.Ref(&s.kDiff)),
		fdn.Diffuse(ap4, fdn.Ref(&s.kDiff)),
	}
	s.loop1 = fdn.Program{
		fdn.ModulatedAllPass(del2, 6261, fdn.LFO2, 50, fdn.Ref(&s.kTime)),
		fdn.Lowpass(&s.damp1, fdn.Ref(&s.kDamp)),
		fdn.Diffuse(dap1a, fdn.Ref(&s.kNegDiff)),
		fdn.Diffuse(dap1b, fdn.Ref(&s.kDiff)),
		fdn.Write(del1, fdn.Const(shimmerFeedback)),
	}
	s.loop2 = fdn.Program{
		fdn.ModulatedAllPass(del1, 4460, fdn.LFO1, 40, fdn.Ref(&s.kTime)),
		fdn.Lowpass(&s.damp2, fdn.Ref(&s.kDamp)),
		fdn.Diffuse(dap2a, fdn.Ref(&s.kNegDiff)),
		fdn.Diffuse(dap2b, fdn.Ref(&s.kDiff)),
		fdn.Write(del2, fdn.Const(shimmerFeedback)),
	}

	return s, nil
}

// Name returns "shimmer".
func (s *Shimmer) Name() string { return "shimmer" }

// SetTime sets the long-line all-pass coefficient.
func (s *Shimmer) SetTime(time float64) { s.time = time }

// Time returns the long-line all-pass coefficient.
func (s *Shimmer) Time() float64 { return s.time }

// SetLowpass sets the loop damping coefficient.
func (s *Shimmer) SetLowpass(lowpass float64) { s.lowpass = lowpass }

// Lowpass returns the loop damping coefficient.
func (s *Shimmer) Lowpass() float64 { return s.lowpass }

// Reset clears the workspace and both damping memories.
func (s *Shimmer) Reset() {
	s.Clear()
	s.damp1 = 0
	s.damp2 = 0
}

// Process runs the shimmer over one block.
func (s *Shimmer) Process(in, out []fdn.Frame) {
	s.latch()
	s.kTime = s.time
	s.kDamp = s.lowpass
	s.kDiff = s.diffusion
	s.kNegDiff = -s.diffusion

	n := min(len(in), len(out))

	c := &s.ctx
	for i := 0; i < n; i++ {
		s.engine.Advance()

		x := in[i]
		apout := s.input.Eval(c, (x.Left+x.Right)*s.kGain)

		s.mix(&out[i], x, s.loop1.Eval(c, apout), s.loop2.Eval(c, apout))
	}

	s.damp1 = core.FlushDenormals(s.damp1)
	s.damp2 = core.FlushDenormals(s.damp2)
}
