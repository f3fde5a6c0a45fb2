package fdn

import (
	"math"
	"testing"
)

func TestContextAlgebra(t *testing.T) {
	var c Context
	if c.Get() != 0 {
		t.Fatalf("zero context: got %v", c.Get())
	}
	c.Set(2)
	c.Add(1)
	c.Multiply(0.5)
	if c.Get() != 1.5 {
		t.Fatalf("got %v want 1.5", c.Get())
	}
}

func TestContextLowpass(t *testing.T) {
	tests := []struct {
		name  string
		state float64
		value float64
		k     float64
		want  float64
	}{
		{name: "pass-through", state: 0.3, value: 1, k: 1, want: 1},
		{name: "hold", state: 0.3, value: 1, k: 0, want: 0.3},
		{name: "half", state: 0, value: 1, k: 0.5, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Context
			state := tt.state
			c.Set(tt.value)
			c.Lp(&state, tt.k)
			if c.Get() != tt.want || state != tt.want {
				t.Fatalf("value=%v state=%v want %v", c.Get(), state, tt.want)
			}
		})
	}
}

func TestContextLowpassConverges(t *testing.T) {
	var c Context
	state := 0.0
	for range 200 {
		c.Set(1)
		c.Lp(&state, 0.1)
	}
	if math.Abs(state-1) > 1e-6 {
		t.Fatalf("step response did not settle: %v", state)
	}
}

func TestContextLowpassDampsAlternatingSignal(t *testing.T) {
	heavy := ringingAmplitude(0.2)
	light := ringingAmplitude(0.9)
	if heavy >= light {
		t.Fatalf("smaller k should damp more: k=0.2 -> %v, k=0.9 -> %v", heavy, light)
	}
}

func ringingAmplitude(k float64) float64 {
	var c Context
	state := 0.0
	peak := 0.0
	for i := range 1000 {
		x := 1.0
		if i%2 == 1 {
			x = -1
		}
		c.Set(x)
		c.Lp(&state, k)
		if i > 900 {
			peak = math.Max(peak, math.Abs(c.Get()))
		}
	}
	return peak
}
