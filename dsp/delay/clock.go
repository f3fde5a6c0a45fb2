package delay

// Clock is the global sample counter shared by every line of one engine.
// Each line derives its write cursor from it, so advancing the clock once
// per sample moves all cursors in lock-step.
type Clock struct {
	n uint64
}

// Tick advances the clock by one sample.
func (c *Clock) Tick() {
	c.n++
}

// Now returns the number of ticks so far.
func (c *Clock) Now() uint64 {
	return c.n
}
