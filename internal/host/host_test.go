package host

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/testutil"
)

func newHost(t *testing.T, initial Model) *Host {
	t.Helper()
	h, err := New(core.DefaultProcessorConfig(), initial)
	require.NoError(t, err)
	return h
}

func noiseBlock(seed int64, n int) []fdn.Frame {
	l := testutil.DeterministicNoise(seed, 0.5, n)
	r := testutil.DeterministicNoise(seed+1, 0.5, n)
	out := make([]fdn.Frame, n)
	for i := range out {
		out[i] = fdn.Frame{Left: l[i], Right: r[i]}
	}
	return out
}

func workspaceSamples(h *Host) []float64 {
	ws := h.Workspace()
	return ws.Span(delay.Region{Capacity: ws.Len()})
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(core.ApplyProcessorOptions(core.WithWorkspaceSize(4096)), ModelPlate)
	require.ErrorIs(t, err, delay.ErrWorkspaceOverflow)

	_, err = New(core.DefaultProcessorConfig(), Model(9))
	require.ErrorIs(t, err, ErrUnknownModel)

	cfg := core.DefaultProcessorConfig()
	cfg.SampleRate = 0
	_, err = New(cfg, ModelPlate)
	require.ErrorIs(t, err, reverb.ErrInvalidSampleRate)
}

func TestControlsMappedPerModel(t *testing.T) {
	h := newHost(t, ModelShimmer)
	h.SetControls(Controls{Strength: 1, Size: 1, Shape: 1})
	block := make([]fdn.Frame, 48)

	h.ProcessBlock(block, block)
	s := h.Reverb(ModelShimmer).(*reverb.Shimmer)
	assert.InDelta(t, 0.5, s.Amount(), 1e-12)
	assert.InDelta(t, 0.98, s.Time(), 1e-12)
	assert.InDelta(t, 0.2, s.InputGain(), 1e-12)
	assert.InDelta(t, 0.9, s.Lowpass(), 1e-12)

	require.NoError(t, h.RequestModel(ModelPlate))
	h.ProcessBlock(block, block)
	p := h.Reverb(ModelPlate).(*reverb.Plate)
	assert.InDelta(t, 0.5, p.Amount(), 1e-12)
	assert.InDelta(t, 1.0, p.Time(), 1e-12)
	assert.InDelta(t, 1.0, p.Lowpass(), 1e-12)

	h.SetControls(Controls{Strength: 0.8, Size: 0.25, Shape: 0.6})
	require.NoError(t, h.RequestModel(ModelAllPassDemo))
	h.ProcessBlock(block, block)
	d := h.Reverb(ModelAllPassDemo).(*reverb.AllPassDemo)
	assert.InDelta(t, 0.8, d.Amount(), 1e-12)
	assert.InDelta(t, 0.25, d.Size(), 1e-12)
	assert.InDelta(t, 0.6, d.Diffusion(), 1e-12)
	assert.InDelta(t, 0.2, d.InputGain(), 1e-12)
}

func TestTunedAppliesControlsWithoutSwitching(t *testing.T) {
	h := newHost(t, ModelShimmer)
	h.SetControls(Controls{Strength: 1, Size: 0, Shape: 0})

	m, err := h.Tuned(ModelPlate)
	require.NoError(t, err)
	p := m.(*reverb.Plate)
	assert.InDelta(t, 0.35, p.Time(), 1e-12)
	assert.InDelta(t, 0.3, p.Lowpass(), 1e-12)
	assert.Equal(t, ModelShimmer, h.Active())
	assert.Zero(t, h.Switches())

	_, err = h.Tuned(Model(7))
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestSetControlsClamps(t *testing.T) {
	h := newHost(t, ModelPlate)
	h.SetControls(Controls{Strength: 3, Size: -1, Shape: 0.5})
	assert.Equal(t, Controls{Strength: 1, Size: 0, Shape: 0.5}, h.Controls())
}

func TestSwitchWaitsForBlockBoundary(t *testing.T) {
	h := newHost(t, ModelShimmer)
	h.SetControls(Controls{Strength: 1, Size: 0.5, Shape: 0.5})

	in := noiseBlock(1, 48)
	for range 20 {
		h.ProcessBlock(in, make([]fdn.Frame, len(in)))
	}

	target := h.RequestNextModel()
	assert.Equal(t, ModelPlate, target)
	assert.Equal(t, ModelShimmer, h.Active(), "switch applied before the block boundary")
	assert.Zero(t, h.Switches())

	// A silent block right after the switch starts from a cleared workspace
	// and leaves it silent.
	silence := make([]fdn.Frame, 48)
	h.ProcessBlock(silence, make([]fdn.Frame, 48))
	assert.Equal(t, ModelPlate, h.Active())
	assert.EqualValues(t, 1, h.Switches())
	testutil.RequireAllZero(t, workspaceSamples(h))
}

func TestRequestNextModelChainsPendingSwitches(t *testing.T) {
	h := newHost(t, ModelShimmer)
	assert.Equal(t, ModelPlate, h.RequestNextModel())
	assert.Equal(t, ModelAllPassDemo, h.RequestNextModel())
	assert.Equal(t, ModelShimmer, h.RequestNextModel())

	h.ProcessBlock(nil, nil)
	assert.Equal(t, ModelShimmer, h.Active())
	assert.EqualValues(t, 1, h.Switches())
}

func TestRequestModelRejectsUnknown(t *testing.T) {
	h := newHost(t, ModelShimmer)
	require.ErrorIs(t, h.RequestModel(Model(-2)), ErrUnknownModel)
	assert.Nil(t, h.Reverb(Model(5)))
}

func TestProcessMatchesBlockwiseProcessing(t *testing.T) {
	in := noiseBlock(3, 1000)
	controls := Controls{Strength: 0.7, Size: 0.4, Shape: 0.3}

	a := newHost(t, ModelPlate)
	b := newHost(t, ModelPlate)
	a.SetControls(controls)
	b.SetControls(controls)

	outA := make([]fdn.Frame, len(in))
	a.Process(in, outA)

	outB := make([]fdn.Frame, len(in))
	for start := 0; start < len(in); start += 48 {
		end := min(start+48, len(in))
		b.ProcessBlock(in[start:end], outB[start:end])
	}

	assert.Equal(t, outA, outB)
}

func TestConcurrentRequestsAndProcessing(t *testing.T) {
	h := newHost(t, ModelShimmer)
	in := noiseBlock(5, 48)
	out := make([]fdn.Frame, 48)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			h.RequestNextModel()
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 200 {
			h.SetControls(Controls{Strength: float64(i%10) / 10, Size: 0.5, Shape: 0.5})
		}
	}()

	for range 400 {
		h.ProcessBlock(in, out)
	}
	wg.Wait()
	h.ProcessBlock(in, out)

	left := make([]float64, len(out))
	for i, f := range out {
		left[i] = f.Left
	}
	testutil.RequireFinite(t, left)
	assert.GreaterOrEqual(t, h.Switches(), uint64(1))
}
