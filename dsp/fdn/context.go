package fdn

// Context is the scalar accumulator threaded through node operations for
// one sample. The zero value is ready to use.
type Context struct {
	value float64
}

// Set replaces the accumulator.
func (c *Context) Set(v float64) {
	c.value = v
}

// Get returns the accumulator.
func (c *Context) Get() float64 {
	return c.value
}

// Add adds v to the accumulator.
func (c *Context) Add(v float64) {
	c.value += v
}

// Multiply scales the accumulator by k.
func (c *Context) Multiply(k float64) {
	c.value *= k
}

// Lp runs a one-pole low-pass whose memory lives in state:
//
//	state += k * (value - state); value = state
//
// Smaller k damps more; k = 1 passes the signal through. state is owned by
// the caller and persists across samples.
func (c *Context) Lp(state *float64, k float64) {
	*state += k * (c.value - *state)
	c.value = *state
}
