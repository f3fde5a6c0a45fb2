package fdn

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/interp"
)

// ErrNilWorkspace is returned when an engine is built without storage.
var ErrNilWorkspace = errors.New("fdn: workspace is nil")

// Engine drives one topology over a shared workspace. It owns the global
// clock and the LFO bank; it does not remember which topology is active.
//
// An Engine must be used from a single processing goroutine.
type Engine struct {
	workspace *delay.Workspace
	clock     delay.Clock
	lfos      [NumLFOs]oscillator
	mode      interp.Mode
}

// Option configures an Engine.
type Option func(*Engine)

// WithInterpolation selects the fractional-read kernel used by
// [AllPass.Interpolate]. The default is [interp.Linear].
func WithInterpolation(mode interp.Mode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// NewEngine returns an engine over ws.
func NewEngine(ws *delay.Workspace, opts ...Option) (*Engine, error) {
	if ws == nil {
		return nil, ErrNilWorkspace
	}
	e := &Engine{workspace: ws, mode: interp.Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Workspace returns the storage the engine binds nodes to.
func (e *Engine) Workspace() *delay.Workspace {
	return e.workspace
}

// Interpolation returns the fractional-read kernel.
func (e *Engine) Interpolation() interp.Mode {
	return e.mode
}

// Clock returns the number of samples advanced so far.
func (e *Engine) Clock() uint64 {
	return e.clock.Now()
}

// Advance moves the clock and every LFO forward by one sample. It must be
// called exactly once per sample, before any node operation for that sample.
func (e *Engine) Advance() {
	e.clock.Tick()
	for i := range e.lfos {
		e.lfos[i].advance()
	}
}

// Clear zeroes the workspace. LFO phases are kept.
func (e *Engine) Clear() {
	e.workspace.Clear()
}

// ConstructTopology binds nodes, in order, to consecutive workspace regions
// and returns the layout. It only derives offsets and never touches stored
// samples, so calling it again with the same node list is a no-op for the
// audio history. The capacity check happens here, once, never per sample.
func (e *Engine) ConstructTopology(nodes ...Node) ([]delay.Region, error) {
	extents := make([]delay.Extent, len(nodes))
	for i, n := range nodes {
		extents[i] = n.Extent()
	}

	regions, err := delay.Partition(e.workspace, extents)
	if err != nil {
		return nil, fmt.Errorf("fdn: construct topology: %w", err)
	}

	for i, n := range nodes {
		n.bind(e, delay.NewLine(e.workspace, regions[i], &e.clock))
	}
	return regions, nil
}
