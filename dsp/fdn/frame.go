package fdn

// Frame is one stereo sample pair.
type Frame struct {
	Left  float64
	Right float64
}
