package fdn

// StageKind tags the operation a [Stage] performs.
type StageKind uint8

const (
	StageDiffuse StageKind = iota
	StageModulatedAllPass
	StageDelay
	StageLowpass
	StageScale
	StageAdd
	StageWrite
	StageTap
)

var stageNames = [...]string{
	StageDiffuse:          "diffuse",
	StageModulatedAllPass: "modulated-allpass",
	StageDelay:            "delay",
	StageLowpass:          "lowpass",
	StageScale:            "scale",
	StageAdd:              "add",
	StageWrite:            "write",
	StageTap:              "tap",
}

// String returns the stage name.
func (k StageKind) String() string {
	if int(k) < len(stageNames) {
		return stageNames[k]
	}
	return "unknown"
}

// Coefficient is a stage parameter: either a constant or a reference to a
// value the owner updates between blocks.
type Coefficient struct {
	value float64
	ref   *float64
}

// Const returns a fixed coefficient.
func Const(v float64) Coefficient {
	return Coefficient{value: v}
}

// Ref returns a coefficient read through p every time the stage runs.
func Ref(p *float64) Coefficient {
	return Coefficient{ref: p}
}

// Value returns the current coefficient.
func (k Coefficient) Value() float64 {
	if k.ref != nil {
		return *k.ref
	}
	return k.value
}

// Stage is one typed step of a [Program].
type Stage struct {
	kind      StageKind
	allpass   *AllPass
	delay     *DelayLine
	target    Tapper
	state     *float64
	k         Coefficient
	base      float64
	excursion float64
	lfo       LFO
	back      int
}

// Kind returns the stage operation.
func (s Stage) Kind() StageKind {
	return s.kind
}

// Diffuse runs ap as a plain all-pass with coefficient k.
func Diffuse(ap *AllPass, k Coefficient) Stage {
	return Stage{kind: StageDiffuse, allpass: ap, k: k}
}

// ModulatedAllPass runs ap with its delayed read swung by an LFO.
func ModulatedAllPass(ap *AllPass, base float64, lfo LFO, excursion float64, k Coefficient) Stage {
	return Stage{kind: StageModulatedAllPass, allpass: ap, base: base, lfo: lfo, excursion: excursion, k: k}
}

// Delay runs d as a pure delay.
func Delay(d *DelayLine) Stage {
	return Stage{kind: StageDelay, delay: d}
}

// Lowpass applies the one-pole low-pass with memory state.
func Lowpass(state *float64, k Coefficient) Stage {
	return Stage{kind: StageLowpass, state: state, k: k}
}

// Scale multiplies the context by k.
func Scale(k Coefficient) Stage {
	return Stage{kind: StageScale, k: k}
}

// Add adds k to the context.
func Add(k Coefficient) Stage {
	return Stage{kind: StageAdd, k: k}
}

// Write injects context*k into n without changing the context.
func Write(n Tapper, k Coefficient) Stage {
	return Stage{kind: StageWrite, target: n, k: k}
}

// Tap adds gain*n.Tap(back) to the context.
func Tap(n Tapper, back int, gain float64) Stage {
	return Stage{kind: StageTap, target: n, back: back, k: Const(gain)}
}

// Program is a signal path evaluated left to right once per sample.
type Program []Stage

// Run threads c through every stage. It does not allocate.
func (p Program) Run(c *Context) {
	for i := range p {
		s := &p[i]
		switch s.kind {
		case StageDiffuse:
			s.allpass.Process(c, s.k.Value())
		case StageModulatedAllPass:
			s.allpass.Interpolate(c, s.base, s.lfo, s.excursion, s.k.Value())
		case StageDelay:
			s.delay.Process(c)
		case StageLowpass:
			c.Lp(s.state, s.k.Value())
		case StageScale:
			c.Multiply(s.k.Value())
		case StageAdd:
			c.Add(s.k.Value())
		case StageWrite:
			s.target.Write(c, s.k.Value())
		case StageTap:
			c.Add(s.k.Value() * s.target.Tap(s.back))
		}
	}
}

// Eval sets the context to seed, runs the program and returns the result.
func (p Program) Eval(c *Context, seed float64) float64 {
	c.Set(seed)
	p.Run(c)
	return c.Get()
}
