package reverb

import (
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

const (
	demoMaxLength = 4453

	defaultDemoSize      = 1.0
	defaultDemoDiffusion = 0.75
)

// AllPassDemo runs the mono input through one all-pass and sends the result
// to both channels.
type AllPassDemo struct {
	base

	size float64

	kDiff float64

	ap   *fdn.AllPass
	path fdn.Program
}

var _ Model = (*AllPassDemo)(nil)

// NewAllPassDemo builds the demo over ws. The region is sized for size 1.
func NewAllPassDemo(ws *delay.Workspace, opts ...fdn.Option) (*AllPassDemo, error) {
	ap := fdn.NewAllPass(demoMaxLength+1, fdn.WithLength(demoMaxLength))

	b, err := newBase("allpass-demo", ws, opts, defaultDemoDiffusion, ap)
	if err != nil {
		return nil, err
	}

	d := &AllPassDemo{
		base: b,
		size: defaultDemoSize,
		ap:   ap,
	}
	d.path = fdn.Program{fdn.Diffuse(ap, fdn.Ref(&d.kDiff))}

	return d, nil
}

// Name returns "allpass-demo".
func (d *AllPassDemo) Name() string { return "allpass-demo" }

// SetSize scales the all-pass length; 1 is 4453 samples.
func (d *AllPassDemo) SetSize(size float64) { d.size = size }

// Size returns the length scale.
func (d *AllPassDemo) Size() float64 { return d.size }

// Length returns the all-pass length in samples for the current size,
// limited to [1, 4453].
func (d *AllPassDemo) Length() int {
	n := int(demoMaxLength * d.size)
	return min(max(n, 1), demoMaxLength)
}

// Reset clears the workspace. The demo has no filter memories.
func (d *AllPassDemo) Reset() { d.Clear() }

// Process runs the demo over one block.
func (d *AllPassDemo) Process(in, out []fdn.Frame) {
	d.latch()
	d.kDiff = d.diffusion
	d.ap.SetLength(d.Length())

	n := min(len(in), len(out))

	c := &d.ctx
	for i := 0; i < n; i++ {
		d.engine.Advance()

		x := in[i]
		wet := d.path.Eval(c, (x.Left+x.Right)*d.kGain)
		d.mix(&out[i], x, wet, wet)
	}
}
