package ir_test

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdnverb/internal/testutil"
	"github.com/cwbudde/algo-fdnverb/measure/ir"
)

func workspace(t *testing.T) *delay.Workspace {
	t.Helper()
	ws, err := delay.NewWorkspace(delay.DefaultWorkspaceSize)
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func TestCaptureRestoresAmount(t *testing.T) {
	p, err := reverb.NewPlate(workspace(t))
	if err != nil {
		t.Fatal(err)
	}
	p.SetAmount(0.3)

	resp, err := ir.Capture(p, 4800, 48)
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount() != 0.3 {
		t.Fatalf("amount = %v, want 0.3", p.Amount())
	}
	if len(resp.Left) != 4800 || len(resp.Right) != 4800 || resp.SampleRate != 48000 {
		t.Fatalf("unexpected response shape: %d %d %v", len(resp.Left), len(resp.Right), resp.SampleRate)
	}
	testutil.RequireFinite(t, resp.Left)
	testutil.RequireFinite(t, resp.Right)
}

func TestCaptureIsRepeatable(t *testing.T) {
	s, err := reverb.NewShimmer(workspace(t))
	if err != nil {
		t.Fatal(err)
	}

	a, err := ir.Capture(s, 9600, 48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ir.Capture(s, 9600, 48)
	if err != nil {
		t.Fatal(err)
	}

	// LFO phases move on between captures, so only the unmodulated
	// diffuser output at the start is identical.
	testutil.RequireSliceNearlyEqual(t, a.Left[:100], b.Left[:100], 1e-12)
}

func TestCaptureRejectsEmptyLength(t *testing.T) {
	d, err := reverb.NewAllPassDemo(workspace(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ir.Capture(d, 0, 48); !errors.Is(err, ir.ErrInvalidLength) {
		t.Fatalf("error = %v, want ErrInvalidLength", err)
	}
}

func TestAllPassDemoIsFlat(t *testing.T) {
	d, err := reverb.NewAllPassDemo(workspace(t))
	if err != nil {
		t.Fatal(err)
	}
	d.SetSize(222.5 / 4453)

	resp, err := ir.Capture(d, 1<<16, 48)
	if err != nil {
		t.Fatal(err)
	}

	mag, err := ir.MagnitudeResponse(resp.Right, 0)
	if err != nil {
		t.Fatal(err)
	}
	if spread := ir.SpreadDB(mag); spread > 1e-6 {
		t.Fatalf("all-pass magnitude spread = %v dB", spread)
	}
}

func TestShimmerTimeLengthensDecay(t *testing.T) {
	rt60 := func(time float64) float64 {
		s, err := reverb.NewShimmer(workspace(t))
		if err != nil {
			t.Fatal(err)
		}
		s.SetTime(time)

		resp, err := ir.Capture(s, 96000, 48)
		if err != nil {
			t.Fatal(err)
		}
		rt, err := ir.NewAnalyzer(resp.SampleRate).RT60(resp.Right)
		if err != nil {
			t.Fatalf("time %v: %v", time, err)
		}
		return rt
	}

	short, long := rt60(0.3), rt60(0.7)
	if !(long > short) {
		t.Fatalf("RT60 at time 0.7 (%v) not longer than at 0.3 (%v)", long, short)
	}
}

func TestPlateMetricsAreFinite(t *testing.T) {
	p, err := reverb.NewPlate(workspace(t))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := ir.Capture(p, 96000, 48)
	if err != nil {
		t.Fatal(err)
	}

	m, err := ir.NewAnalyzer(resp.SampleRate).Analyze(resp.Left)
	if err != nil {
		t.Fatal(err)
	}
	if m.RT60 <= 0 || m.RT60 > 2 {
		t.Fatalf("RT60 = %v, want within (0, 2] s", m.RT60)
	}
}
