package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

// ErrInvalidSampleRate is returned by Init for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("reverb: sample rate must be > 0")

// LFO rates shared by every model, in Hz.
const (
	lfo1Hz = 0.5
	lfo2Hz = 0.3

	defaultAmount    = 0.0
	defaultInputGain = 1.0
)

// Model is the control surface shared by every topology.
type Model interface {
	// Name returns a short identifier such as "plate".
	Name() string
	// Init sets the LFO rates for sampleRate.
	Init(sampleRate float64) error
	SampleRate() float64
	// Process adds (wet - in) * amount onto out for min(len(in), len(out)) frames.
	Process(in, out []fdn.Frame)
	// Clear zeroes the shared workspace.
	Clear()
	// Reset clears the workspace and the model's filter memories.
	Reset()
	SetAmount(amount float64)
	Amount() float64
	SetInputGain(gain float64)
	SetDiffusion(diffusion float64)
	// Layout returns the regions the model occupies in its workspace.
	Layout() []delay.Region
}

// base holds the parameters and engine every model has in common. Setters
// write the raw fields; latch copies them into the k* fields the programs
// read, once per block.
type base struct {
	engine     *fdn.Engine
	layout     []delay.Region
	ctx        fdn.Context
	sampleRate float64

	amount    float64
	inputGain float64
	diffusion float64

	kAmount float64
	kGain   float64
}

func newBase(name string, ws *delay.Workspace, opts []fdn.Option, diffusion float64, nodes ...fdn.Node) (base, error) {
	e, err := fdn.NewEngine(ws, opts...)
	if err != nil {
		return base{}, fmt.Errorf("reverb: %s: %w", name, err)
	}

	layout, err := e.ConstructTopology(nodes...)
	if err != nil {
		return base{}, fmt.Errorf("reverb: %s: %w", name, err)
	}

	b := base{
		engine:    e,
		layout:    layout,
		amount:    defaultAmount,
		inputGain: defaultInputGain,
		diffusion: diffusion,
	}
	if err := b.Init(core.DefaultSampleRate); err != nil {
		return base{}, err
	}
	return b, nil
}

// Init sets both LFO rates for sampleRate. Phases are kept.
func (b *base) Init(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	b.sampleRate = sampleRate
	b.engine.SetLFOFrequency(fdn.LFO1, lfo1Hz/sampleRate)
	b.engine.SetLFOFrequency(fdn.LFO2, lfo2Hz/sampleRate)
	return nil
}

// SampleRate returns the rate passed to the last Init.
func (b *base) SampleRate() float64 { return b.sampleRate }

// Engine returns the engine driving the model.
func (b *base) Engine() *fdn.Engine { return b.engine }

// Layout returns the regions the model occupies in its workspace.
func (b *base) Layout() []delay.Region { return b.layout }

// SetAmount sets the wet mix applied by the next Process.
func (b *base) SetAmount(amount float64) { b.amount = amount }

// Amount returns the wet mix.
func (b *base) Amount() float64 { return b.amount }

// SetInputGain sets the gain applied to the mono input sum.
func (b *base) SetInputGain(gain float64) { b.inputGain = gain }

// InputGain returns the input gain.
func (b *base) InputGain() float64 { return b.inputGain }

// SetDiffusion sets the input diffuser coefficient.
func (b *base) SetDiffusion(diffusion float64) { b.diffusion = diffusion }

// Diffusion returns the input diffuser coefficient.
func (b *base) Diffusion() float64 { return b.diffusion }

// Clear zeroes the workspace. Filter memories and LFO phases are kept.
func (b *base) Clear() { b.engine.Clear() }

func (b *base) latch() {
	b.kAmount = b.amount
	b.kGain = b.inputGain
}

// mix adds (wet - in) * amount onto out.
func (b *base) mix(out *fdn.Frame, in fdn.Frame, wetLeft, wetRight float64) {
	out.Left += (wetLeft - in.Left) * b.kAmount
	out.Right += (wetRight - in.Right) * b.kAmount
}
