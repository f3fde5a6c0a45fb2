// Package fdn implements the feedback-delay-network primitives shared by the
// reverb topologies in dsp/effects/reverb.
//
// An [Engine] owns the global sample clock and the modulation bank and binds
// nodes ([DelayLine], [AllPass]) to regions of one shared delay.Workspace
// with [Engine.ConstructTopology]. Per sample the caller advances the engine
// once, seeds a [Context] from the input and threads it through node
// operations; the call order is the signal-flow graph. [Program] expresses
// the same flow as a list of typed stages.
//
// Nothing in the per-sample path allocates, blocks or fails. Coefficients
// are not validated: |k| >= 1 in a recursive node is a caller error that
// shows up as unbounded growth.
//
// # Usage
//
//	ws, _ := delay.NewWorkspace(delay.DefaultWorkspaceSize)
//	e, _ := fdn.NewEngine(ws)
//	ap := fdn.NewAllPass(142)
//	if _, err := e.ConstructTopology(ap); err != nil { ... }
//
//	var c fdn.Context
//	for _, x := range input {
//		e.Advance()
//		c.Set(x)
//		ap.Process(&c, 0.75)
//		y := c.Get()
//	}
package fdn
