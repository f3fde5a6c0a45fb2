package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/config"
	"github.com/cwbudde/algo-fdnverb/internal/host"
)

// ErrNoInput is returned when the chosen input device has no channels.
var ErrNoInput = errors.New("audio: input device has no channels")

// Stream runs a host on a duplex PortAudio stream. The callback reuses
// buffers sized for one host block and never allocates or logs; oversized
// callbacks are counted as drops and reported by Monitor.
type Stream struct {
	host   *host.Host
	logger *slog.Logger

	inChannels int
	in, out    []fdn.Frame

	stream  *portaudio.Stream
	blocks  atomic.Uint64
	dropped atomic.Uint64
}

func newStream(h *host.Host, logger *slog.Logger, inChannels int) *Stream {
	n := h.Config().BlockSize
	return &Stream{
		host:       h,
		logger:     logger,
		inChannels: inChannels,
		in:         make([]fdn.Frame, n),
		out:        make([]fdn.Frame, n),
	}
}

// Open selects the devices from cfg and opens a stream that delivers one host
// block per callback. The stream is not started.
func Open(h *host.Host, cfg config.LiveConfig, logger *slog.Logger) (*Stream, error) {
	inDev, err := InputDevice(cfg.InputDevice)
	if err != nil {
		return nil, fmt.Errorf("audio: input device: %w", err)
	}
	outDev, err := OutputDevice(cfg.OutputDevice)
	if err != nil {
		return nil, fmt.Errorf("audio: output device: %w", err)
	}

	inChannels := min(2, inDev.MaxInputChannels)
	if inChannels < 1 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, inDev.Name)
	}

	inLatency, outLatency := inDev.DefaultHighInputLatency, outDev.DefaultHighOutputLatency
	if cfg.LowLatency {
		inLatency, outLatency = inDev.DefaultLowInputLatency, outDev.DefaultLowOutputLatency
	}

	pc := h.Config()
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   inDev,
			Channels: inChannels,
			Latency:  inLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   outDev,
			Channels: 2,
			Latency:  outLatency,
		},
		SampleRate:      pc.SampleRate,
		FramesPerBuffer: pc.BlockSize,
	}

	s := newStream(h, logger, inChannels)
	stream, err := portaudio.OpenStream(params, s.process)
	if err != nil {
		return nil, fmt.Errorf("audio: open stream: %w", err)
	}
	s.stream = stream

	logger.Info("stream opened",
		"input", inDev.Name,
		"output", outDev.Name,
		"inputChannels", inChannels,
		"sampleRate", pc.SampleRate,
		"blockSize", pc.BlockSize,
		"latency", outLatency,
	)
	return s, nil
}

// Start begins processing.
func (s *Stream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}
	return nil
}

// Close stops and closes the stream.
func (s *Stream) Close() error {
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		s.stream = nil
		return fmt.Errorf("audio: stop stream: %w", err)
	}
	err := s.stream.Close()
	s.stream = nil
	if err != nil {
		return fmt.Errorf("audio: close stream: %w", err)
	}
	return nil
}

// Blocks returns the number of blocks processed.
func (s *Stream) Blocks() uint64 { return s.blocks.Load() }

// Dropped returns the number of callbacks that could not be processed.
func (s *Stream) Dropped() uint64 { return s.dropped.Load() }

// Monitor logs new drops and model switches every interval until ctx is
// done.
func (s *Stream) Monitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastDropped, lastSwitches uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if d := s.Dropped(); d != lastDropped {
				s.logger.Warn("dropped callbacks", "total", d, "new", d-lastDropped)
				lastDropped = d
			}
			if sw := s.host.Switches(); sw != lastSwitches {
				s.logger.Info("model active", "model", s.host.Active(), "switches", sw)
				lastSwitches = sw
			}
		}
	}
}

// process is the PortAudio callback. Input and output are interleaved.
func (s *Stream) process(in, out []float32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	n := len(out) / 2
	if n > len(s.out) || len(in) < n*s.inChannels {
		clear(out)
		s.dropped.Add(1)
		return
	}

	for i := range n {
		l := float64(in[i*s.inChannels])
		r := l
		if s.inChannels > 1 {
			r = float64(in[i*s.inChannels+1])
		}
		s.in[i] = fdn.Frame{Left: l, Right: r}
	}

	// Output starts as the dry signal; the model adds its wet difference.
	copy(s.out[:n], s.in[:n])
	s.host.ProcessBlock(s.in[:n], s.out[:n])

	for i := range n {
		out[2*i] = float32(s.out[i].Left)
		out[2*i+1] = float32(s.out[i].Right)
	}
	s.blocks.Add(1)
}
