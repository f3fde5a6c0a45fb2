package reverb

import (
	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

const (
	plateMaxExcursion = 16

	plateBandwidth      = 0.9995
	plateDecayDiffusion = 0.70
	plateTapGain        = 0.6

	defaultPlateTime      = 0.5
	defaultPlateLowpass   = 0.7
	defaultPlateDiffusion = 0.75
)

// Plate is a Dattorro-style plate reverb. The mono input is band-limited,
// smeared by four diffusers and fed into a two-halved tank; each channel is
// a signed sum of seven taps spread across both halves.
type Plate struct {
	base

	time    float64
	lowpass float64

	kDecay   float64
	kDamp    float64
	kInDiff1 float64
	kInDiff2 float64
	kDecDiff float64

	apout float64
	band  float64
	damp1 float64
	damp2 float64

	input fdn.Program
	half1 fdn.Program
	half2 fdn.Program
	left  fdn.Program
	right fdn.Program
}

var _ Model = (*Plate)(nil)

// NewPlate builds a plate over ws. It fails if the topology does not fit.
func NewPlate(ws *delay.Workspace, opts ...fdn.Option) (*Plate, error) {
	ap1 := fdn.NewAllPass(142)
	ap2 := fdn.NewAllPass(107)
	ap3 := fdn.NewAllPass(379)
	ap4 := fdn.NewAllPass(277)

	dap1a := fdn.NewAllPass(672, fdn.WithExcursion(plateMaxExcursion))
	del1a := fdn.NewDelayLine(4453)
	dap1b := fdn.NewAllPass(1800)
	del1b := fdn.NewDelayLine(3720)

	dap2a := fdn.NewAllPass(908, fdn.WithExcursion(plateMaxExcursion))
	del2a := fdn.NewDelayLine(4217)
	dap2b := fdn.NewAllPass(2656)
	del2b := fdn.NewDelayLine(3163)

	b, err := newBase("plate", ws, opts, defaultPlateDiffusion,
		ap1, ap2, ap3, ap4,
		dap1a, del1a, dap1b, del1b,
		dap2a, del2a, dap2b, del2b,
	)
	if err != nil {
		return nil, err
	}

	p := &Plate{
		base:    b,
		time:    defaultPlateTime,
		lowpass: defaultPlateLowpass,
	}

	p.input = fdn.Program{
		fdn.Lowpass(&p.band, fdn.Const(plateBandwidth)),
		fdn.Diffuse(ap1, fdn.Ref(&p.kInDiff1)),
		fdn.Diffuse(ap2, fdn.Ref(&p.kInDiff1)),
		fdn.Diffuse(ap3, fdn.Ref(&p.kInDiff2)),
		fdn.Diffuse(ap4, fdn.Ref(&p.kInDiff2)),
	}
	p.half1 = fdn.Program{
		fdn.ModulatedAllPass(dap1a, 672, fdn.LFO2, plateMaxExcursion, fdn.Const(-plateDecayDiffusion)),
		fdn.Delay(del1a),
		fdn.Lowpass(&p.damp1, fdn.Ref(&p.kDamp)),
		fdn.Scale(fdn.Ref(&p.kDecay)),
		fdn.Diffuse(dap1b, fdn.Ref(&p.kDecDiff)),
		fdn.Delay(del1b),
		fdn.Scale(fdn.Ref(&p.kDecay)),
		fdn.Add(fdn.Ref(&p.apout)),
		fdn.Write(dap2a, fdn.Ref(&p.kDecDiff)),
	}
	p.half2 = fdn.Program{
		fdn.ModulatedAllPass(dap2a, 908, fdn.LFO1, plateMaxExcursion, fdn.Const(-plateDecayDiffusion)),
		fdn.Delay(del2a),
		fdn.Lowpass(&p.damp2, fdn.Ref(&p.kDamp)),
		fdn.Scale(fdn.Ref(&p.kDecay)),
		fdn.Diffuse(dap2b, fdn.Ref(&p.kDecDiff)),
		fdn.Delay(del2b),
		fdn.Scale(fdn.Ref(&p.kDecay)),
		fdn.Add(fdn.Ref(&p.apout)),
		fdn.Write(dap1a, fdn.Const(plateDecayDiffusion)),
	}
	p.left = fdn.Program{
		fdn.Tap(del2a, 266, plateTapGain),
		fdn.Tap(del2a, 2974, plateTapGain),
		fdn.Tap(dap2b, 1913, -plateTapGain),
		fdn.Tap(del2b, 1996, plateTapGain),
		fdn.Tap(del1a, 1990, -plateTapGain),
		fdn.Tap(dap1b, 187, -plateTapGain),
		fdn.Tap(del1b, 1066, -plateTapGain),
	}
	p.right = fdn.Program{
		fdn.Tap(del1a, 353, plateTapGain),
		fdn.Tap(del1a, 3627, plateTapGain),
		fdn.Tap(dap1b, 1228, -plateTapGain),
		fdn.Tap(del1b, 2673, plateTapGain),
		fdn.Tap(del2a, 2111, -plateTapGain),
		fdn.Tap(dap2b, 335, -plateTapGain),
		fdn.Tap(del2b, 121, -plateTapGain),
	}

	return p, nil
}

// Name returns "plate".
func (p *Plate) Name() string { return "plate" }

// SetTime sets the tank decay factor.
func (p *Plate) SetTime(time float64) { p.time = time }

// Time returns the tank decay factor.
func (p *Plate) Time() float64 { return p.time }

// SetLowpass sets the tank damping coefficient. Smaller values damp more.
func (p *Plate) SetLowpass(lowpass float64) { p.lowpass = lowpass }

// Lowpass returns the tank damping coefficient.
func (p *Plate) Lowpass() float64 { return p.lowpass }

// Reset clears the workspace and the band-limit and damping memories.
func (p *Plate) Reset() {
	p.Clear()
	p.apout = 0
	p.band = 0
	p.damp1 = 0
	p.damp2 = 0
}

// Process runs the plate over one block.
func (p *Plate) Process(in, out []fdn.Frame) {
	p.latch()
	p.kDecay = p.time
	p.kDamp = p.lowpass
	p.kInDiff1 = p.diffusion
	p.kInDiff2 = p.diffusion * 5 / 6
	p.kDecDiff = core.Clamp(p.time+0.15, 0.25, 0.5)

	n := min(len(in), len(out))

	c := &p.ctx
	for i := 0; i < n; i++ {
		p.engine.Advance()

		x := in[i]
		p.apout = p.input.Eval(c, (x.Left+x.Right)*p.kGain)
		p.half1.Eval(c, p.apout)
		p.half2.Eval(c, p.apout)

		p.mix(&out[i], x, p.left.Eval(c, 0), p.right.Eval(c, 0))
	}

	p.band = core.FlushDenormals(p.band)
	p.damp1 = core.FlushDenormals(p.damp1)
	p.damp2 = core.FlushDenormals(p.damp2)
}
