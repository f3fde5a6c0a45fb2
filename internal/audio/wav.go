// Package audio moves stereo frames between the reverb host and the outside
// world: WAV files for offline rendering and a PortAudio duplex stream for
// live processing.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

var (
	ErrInvalidWAV  = errors.New("audio: invalid WAV file")
	ErrBitDepth    = errors.New("audio: unsupported bit depth")
	ErrInvalidRate = errors.New("audio: invalid sample rate")
	ErrNoChannels  = errors.New("audio: no channels")
)

// Clip is a decoded stereo recording.
type Clip struct {
	Frames     []fdn.Frame
	SampleRate int
}

// Seconds returns the clip duration.
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Frames)) / float64(c.SampleRate)
}

// ReadWAV decodes an integer PCM WAV stream. Mono files are copied to both
// channels; channels beyond the second are ignored.
func ReadWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	bitDepth := int(dec.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	raw := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		raw[i] = float64(v)
	}
	norm := make([]float64, len(raw))
	vecmath.ScaleBlock(norm, raw, 1/fullScale(bitDepth))

	n := len(norm) / channels
	frames := make([]fdn.Frame, n)
	for i := range frames {
		l := norm[i*channels]
		r := l
		if channels > 1 {
			r = norm[i*channels+1]
		}
		frames[i] = fdn.Frame{Left: l, Right: r}
	}

	return &Clip{Frames: frames, SampleRate: buf.Format.SampleRate}, nil
}

// ReadWAVFile opens path and decodes it with ReadWAV.
func ReadWAVFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	clip, err := ReadWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// WriteWAV encodes frames as stereo integer PCM. Samples outside [-1, 1] are
// clipped.
func WriteWAV(w io.WriteSeeker, frames []fdn.Frame, sampleRate, bitDepth int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}

	interleaved := make([]float64, 2*len(frames))
	for i, f := range frames {
		interleaved[2*i] = core.Clamp(f.Left, -1, 1)
		interleaved[2*i+1] = core.Clamp(f.Right, -1, 1)
	}
	scaled := make([]float64, len(interleaved))
	vecmath.ScaleBlock(scaled, interleaved, fullScale(bitDepth)-1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(scaled)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range scaled {
		buf.Data[i] = int(math.Round(v))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 2, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	return nil
}

// WriteWAVFile creates path and writes frames with WriteWAV.
func WriteWAVFile(path string, frames []fdn.Frame, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}

	if err := WriteWAV(f, frames, sampleRate, bitDepth); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkBitDepth(bits int) error {
	switch bits {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrBitDepth, bits)
	}
}

func fullScale(bits int) float64 {
	return math.Ldexp(1, bits-1)
}
