package fdn

import (
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/interp"
)

// Node is anything that can be placed in a topology.
type Node interface {
	// Extent returns the region size the node needs.
	Extent() delay.Extent
	bind(e *Engine, line delay.Line)
}

// Tapper is a node whose history can be read at fixed offsets and written
// from a context. Both [DelayLine] and [AllPass] are Tappers.
type Tapper interface {
	Node
	Tap(back int) float64
	Write(c *Context, k float64)
}

// NodeOption configures a node at construction.
type NodeOption func(*node)

// WithLength sets the nominal delay used by Process. The default is the
// region capacity minus one.
func WithLength(length int) NodeOption {
	return func(n *node) {
		n.length = length
	}
}

// WithHeadroom reserves extra history beyond the capacity.
func WithHeadroom(headroom int) NodeOption {
	return func(n *node) {
		n.extent.Headroom = headroom
	}
}

// WithExcursion reserves enough headroom for modulated reads that swing up
// to excursion samples past the nominal length, with either kernel.
func WithExcursion(excursion int) NodeOption {
	return WithHeadroom(excursion + interp.Hermite.Reach())
}

// node is the view shared by every node type: an extent, a nominal length
// and, once bound, a ring over its region.
type node struct {
	extent delay.Extent
	length int
	line   delay.Line
	engine *Engine
}

func newNode(capacity int, opts []NodeOption) node {
	n := node{
		extent: delay.Extent{Capacity: capacity},
		length: capacity - 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return n
}

// Extent returns the region size the node needs.
func (n *node) Extent() delay.Extent {
	return n.extent
}

func (n *node) bind(e *Engine, line delay.Line) {
	n.engine = e
	n.line = line
}

// Bound reports whether the node has been placed in a topology.
func (n *node) Bound() bool {
	return n.engine != nil
}

// Length returns the nominal delay in samples.
func (n *node) Length() int {
	return n.length
}

// SetLength changes the nominal delay without touching stored history.
func (n *node) SetLength(length int) {
	n.length = length
}

// Tap returns the sample written back ticks ago. It has no side effects.
func (n *node) Tap(back int) float64 {
	return n.line.Read(back)
}

// Write stores c*k at the cursor and leaves c unchanged. It is the feedback
// injection point for a later stage of the network.
func (n *node) Write(c *Context, k float64) {
	n.line.Write(c.value * k)
}

func (n *node) readModulated(base float64, lfo LFO, excursion float64) float64 {
	if n.engine == nil {
		return n.line.Read(int(base))
	}
	return n.line.ReadFractional(base+excursion*n.engine.LFOValue(lfo), n.engine.mode)
}

// DelayLine is a pure delay node.
type DelayLine struct {
	node
}

// NewDelayLine returns a delay node occupying capacity samples.
func NewDelayLine(capacity int, opts ...NodeOption) *DelayLine {
	return &DelayLine{node: newNode(capacity, opts)}
}

// Process writes the context at the cursor and replaces it with the sample
// written Length ticks ago.
func (d *DelayLine) Process(c *Context) {
	d.line.Write(c.value)
	c.value = d.line.Read(d.length)
}

// AllPass is a Schroeder all-pass node. The scattering coefficient is passed
// per call; the node keeps no state outside its region.
type AllPass struct {
	node
}

// NewAllPass returns an all-pass node occupying capacity samples.
func NewAllPass(capacity int, opts ...NodeOption) *AllPass {
	return &AllPass{node: newNode(capacity, opts)}
}

// Process runs the scattering junction with coefficient k:
//
//	out = -k*in + delayed; write in + k*out; context = out
//
// With k = 0 it is a pure delay of Length samples.
func (a *AllPass) Process(c *Context, k float64) {
	in := c.value
	out := -k*in + a.line.Read(a.length)
	a.line.Write(in + k*out)
	c.value = out
}

// Interpolate runs the same junction as Process, reading the delayed sample
// at base + excursion*lfo with the engine's fractional kernel. The node needs
// headroom of at least excursion (see [WithExcursion]).
func (a *AllPass) Interpolate(c *Context, base float64, lfo LFO, excursion, k float64) {
	in := c.value
	out := -k*in + a.readModulated(base, lfo, excursion)
	a.line.Write(in + k*out)
	c.value = out
}
