package host

import (
	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
)

// inputGain is the gain every model applies to the mono input sum when
// driven from the host.
const inputGain = 0.2

// Controls are the three normalized knobs of the panel.
type Controls struct {
	Strength float64 `yaml:"strength"`
	Size     float64 `yaml:"size"`
	Shape    float64 `yaml:"shape"`
}

// Clamped returns c with every knob limited to [0, 1].
func (c Controls) Clamped() Controls {
	return Controls{
		Strength: core.Clamp01(c.Strength),
		Size:     core.Clamp01(c.Size),
		Shape:    core.Clamp01(c.Shape),
	}
}

func applyShimmer(s *reverb.Shimmer, c Controls) {
	s.SetAmount(c.Strength * 0.5)
	s.SetTime(0.35 + 0.63*c.Size)
	s.SetInputGain(inputGain)
	s.SetLowpass(0.3 + 0.6*c.Shape)
}

func applyPlate(p *reverb.Plate, c Controls) {
	p.SetAmount(c.Strength * 0.5)
	p.SetTime(0.35 + 0.65*c.Size)
	p.SetInputGain(inputGain)
	p.SetLowpass(0.3 + 0.7*c.Shape)
}

func applyDemo(d *reverb.AllPassDemo, c Controls) {
	d.SetAmount(c.Strength)
	d.SetInputGain(inputGain)
	d.SetSize(c.Size)
	d.SetDiffusion(c.Shape)
}
