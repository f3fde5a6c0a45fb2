package audio

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/host"
)

func newTestStream(t *testing.T, inChannels int) (*Stream, *host.Host) {
	t.Helper()
	h, err := host.New(core.DefaultProcessorConfig(), host.ModelPlate)
	require.NoError(t, err)
	return newStream(h, slog.New(slog.NewTextHandler(io.Discard, nil)), inChannels), h
}

func TestStreamMatchesHost(t *testing.T) {
	s, h := newTestStream(t, 2)
	ref, err := host.New(core.DefaultProcessorConfig(), host.ModelPlate)
	require.NoError(t, err)
	knobs := host.Controls{Strength: 1, Size: 0.7, Shape: 0.4}
	h.SetControls(knobs)
	ref.SetControls(knobs)

	n := core.DefaultBlockSize
	in := make([]float32, 2*n)
	out := make([]float32, 2*n)
	refIn := make([]fdn.Frame, n)
	refOut := make([]fdn.Frame, n)

	for block := range 20 {
		for i := range n {
			v := float32(0)
			if block == 0 && i == 0 {
				v = 1
			}
			in[2*i], in[2*i+1] = v, -v/2
			refIn[i] = fdn.Frame{Left: float64(v), Right: float64(-v / 2)}
		}
		copy(refOut, refIn)

		s.process(in, out)
		ref.ProcessBlock(refIn, refOut)

		for i := range n {
			require.InDelta(t, refOut[i].Left, float64(out[2*i]), 1e-6)
			require.InDelta(t, refOut[i].Right, float64(out[2*i+1]), 1e-6)
		}
	}
	assert.Equal(t, uint64(20), s.Blocks())
	assert.Zero(t, s.Dropped())
}

func TestStreamMonoInput(t *testing.T) {
	s, h := newTestStream(t, 1)
	h.SetControls(host.Controls{})

	n := core.DefaultBlockSize
	in := make([]float32, n)
	out := make([]float32, 2*n)
	in[0] = 0.25

	s.process(in, out)
	assert.InDelta(t, 0.25, float64(out[0]), 1e-6, "zero strength passes the dry input")
	assert.InDelta(t, 0.25, float64(out[1]), 1e-6)
}

func TestStreamDropsOversizedCallbacks(t *testing.T) {
	s, _ := newTestStream(t, 2)

	n := 2 * core.DefaultBlockSize
	out := make([]float32, 2*n)
	for i := range out {
		out[i] = 1
	}
	s.process(make([]float32, 2*n), out)

	assert.Equal(t, uint64(1), s.Dropped())
	assert.Zero(t, s.Blocks())
	for _, v := range out {
		require.Zero(t, v)
	}
}

func TestStreamProcessDoesNotAllocate(t *testing.T) {
	s, _ := newTestStream(t, 2)
	in := make([]float32, 2*core.DefaultBlockSize)
	out := make([]float32, 2*core.DefaultBlockSize)

	allocs := testing.AllocsPerRun(100, func() { s.process(in, out) })
	assert.Zero(t, allocs)
}

func TestDeviceKind(t *testing.T) {
	assert.Equal(t, "input/output", deviceKind(2, 2))
	assert.Equal(t, "input", deviceKind(1, 0))
	assert.Equal(t, "output", deviceKind(0, 2))
	assert.Equal(t, "none", deviceKind(0, 0))
}
