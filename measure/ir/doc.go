// Package ir captures and analyzes impulse responses of the reverb models.
//
// Decay metrics follow ISO 3382 and are derived from the Schroeder backward
// integration of the squared response:
//
//   - RT60: reverberation time, extrapolated from T30 or T20
//   - EDT: early decay time (0 to -10 dB)
//   - T20, T30: decay from -5 to -25 dB and -5 to -35 dB
//   - C50, C80: clarity at 50 ms and 80 ms
//   - D50: definition at 50 ms
//   - Center time: temporal energy centroid
//
// MagnitudeResponse reports the spectrum of a captured response, which is
// how the all-pass property of the diffusers is checked.
//
// # Usage
//
//	resp, err := ir.Capture(plate, 96000, 48)
//	metrics, err := ir.NewAnalyzer(resp.SampleRate).Analyze(resp.Left)
//	fmt.Printf("RT60 = %.2f s\n", metrics.RT60)
package ir
