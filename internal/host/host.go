// Package host runs the reverb models the way the hardware panel does: three
// knobs mapped per model, a model switch that clears the shared workspace,
// and block-sized processing.
//
// Controls and model requests may come from any goroutine. They are picked
// up by ProcessBlock at the next block boundary, so the audio path never
// observes a half-applied switch.
package host

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

const noPending = -1

// Host owns one workspace and the three models carved from it.
type Host struct {
	cfg       core.ProcessorConfig
	workspace *delay.Workspace

	shimmer *reverb.Shimmer
	plate   *reverb.Plate
	demo    *reverb.AllPassDemo
	models  [NumModels]reverb.Model

	// Only touched by the processing goroutine.
	current Model

	active   atomic.Int32
	pending  atomic.Int32
	controls atomic.Pointer[Controls]
	switches atomic.Uint64
}

// New builds the workspace and all models for cfg. engineOpts are passed to
// every model's engine.
func New(cfg core.ProcessorConfig, initial Model, engineOpts ...fdn.Option) (*Host, error) {
	if initial < 0 || int(initial) >= NumModels {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, initial)
	}

	ws, err := delay.NewWorkspace(cfg.WorkspaceSize)
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	h := &Host{cfg: cfg, workspace: ws, current: initial}

	if h.shimmer, err = reverb.NewShimmer(ws, engineOpts...); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	if h.plate, err = reverb.NewPlate(ws, engineOpts...); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	if h.demo, err = reverb.NewAllPassDemo(ws, engineOpts...); err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}

	h.models[ModelShimmer] = h.shimmer
	h.models[ModelPlate] = h.plate
	h.models[ModelAllPassDemo] = h.demo

	for _, m := range h.models {
		if err := m.Init(cfg.SampleRate); err != nil {
			return nil, fmt.Errorf("host: %s: %w", m.Name(), err)
		}
	}

	h.active.Store(int32(initial))
	h.pending.Store(noPending)
	h.controls.Store(&Controls{})

	return h, nil
}

// Config returns the processing configuration.
func (h *Host) Config() core.ProcessorConfig { return h.cfg }

// Workspace returns the storage shared by every model.
func (h *Host) Workspace() *delay.Workspace { return h.workspace }

// Reverb returns the model instance for m, or nil for an unknown model.
func (h *Host) Reverb(m Model) reverb.Model {
	if m < 0 || int(m) >= NumModels {
		return nil
	}
	return h.models[m]
}

// Active returns the model processed by the most recent block.
func (h *Host) Active() Model { return Model(h.active.Load()) }

// Switches returns how many model switches have been applied.
func (h *Host) Switches() uint64 { return h.switches.Load() }

// SetControls stores knob values for the next block. Values are clamped.
func (h *Host) SetControls(c Controls) {
	c = c.Clamped()
	h.controls.Store(&c)
}

// Controls returns the knob values the next block will use.
func (h *Host) Controls() Controls { return *h.controls.Load() }

// RequestModel schedules a switch to m at the next block boundary.
func (h *Host) RequestModel(m Model) error {
	if m < 0 || int(m) >= NumModels {
		return fmt.Errorf("%w: %d", ErrUnknownModel, m)
	}
	h.pending.Store(int32(m))
	return nil
}

// RequestNextModel schedules a switch to the model after the active or
// already pending one, like pressing the encoder. It returns the target.
func (h *Host) RequestNextModel() Model {
	for {
		cur := h.pending.Load()
		from := cur
		if from == noPending {
			from = h.active.Load()
		}
		next := Model(from).Next()
		if h.pending.CompareAndSwap(cur, int32(next)) {
			return next
		}
	}
}

// ProcessBlock applies any pending switch and the latest controls, then runs
// the active model over in, adding onto out. Call it from one goroutine only.
func (h *Host) ProcessBlock(in, out []fdn.Frame) {
	if p := h.pending.Swap(noPending); p != noPending {
		h.current = Model(p)
		h.workspace.Clear()
		h.active.Store(p)
		h.switches.Add(1)
	}

	h.apply(h.current, *h.controls.Load())
	h.models[h.current].Process(in, out)
}

// Tuned applies the current controls to model m and returns it. Offline
// measurements use it to run a model outside ProcessBlock; it must not be
// called while another goroutine is processing.
func (h *Host) Tuned(m Model) (reverb.Model, error) {
	if m < 0 || int(m) >= NumModels {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, m)
	}
	h.apply(m, *h.controls.Load())
	return h.models[m], nil
}

func (h *Host) apply(m Model, c Controls) {
	switch m {
	case ModelShimmer:
		applyShimmer(h.shimmer, c)
	case ModelPlate:
		applyPlate(h.plate, c)
	case ModelAllPassDemo:
		applyDemo(h.demo, c)
	}
}

// Process runs ProcessBlock over consecutive blocks of the configured size.
func (h *Host) Process(in, out []fdn.Frame) {
	n := min(len(in), len(out))
	core.Blocks(n, h.cfg.BlockSize, func(start, end int) {
		h.ProcessBlock(in[start:end], out[start:end])
	})
}
