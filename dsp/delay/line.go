package delay

import (
	"math"

	"github.com/cwbudde/algo-fdnverb/dsp/interp"
)

// Line is a circular view over one workspace region.
//
// The write cursor is clock mod span, so a Line holds no position of its
// own and can be rebuilt at any time without losing history. The zero Line
// reads as silence and ignores writes.
type Line struct {
	buffer []float64
	clock  *Clock
}

// NewLine binds a line to region r of ws, driven by clock.
func NewLine(ws *Workspace, r Region, clock *Clock) Line {
	return Line{buffer: ws.Span(r), clock: clock}
}

// Len returns the ring size in samples (capacity plus headroom).
func (l Line) Len() int {
	return len(l.buffer)
}

// Cursor returns the current write index within the region.
func (l Line) Cursor() int {
	size := len(l.buffer)
	if size == 0 {
		return 0
	}
	return int(l.clock.Now() % uint64(size))
}

// Write stores sample at the cursor. The cursor only moves with the clock.
func (l Line) Write(sample float64) {
	if len(l.buffer) == 0 {
		return
	}
	l.buffer[l.Cursor()] = sample
}

// Read returns the sample written delay ticks ago. Any delay is accepted;
// it is reduced modulo the ring size.
func (l Line) Read(delay int) float64 {
	size := len(l.buffer)
	if size == 0 {
		return 0
	}
	readPos := (l.Cursor() - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return l.buffer[readPos]
}

// ReadFractional reads a non-integer delay with the given kernel.
func (l Line) ReadFractional(delay float64, mode interp.Mode) float64 {
	p := math.Floor(delay)
	t := delay - p
	i := int(p)

	if mode == interp.Hermite {
		return interp.Hermite4(t, l.Read(i-1), l.Read(i), l.Read(i+1), l.Read(i+2))
	}
	return interp.Linear2(t, l.Read(i), l.Read(i+1))
}
