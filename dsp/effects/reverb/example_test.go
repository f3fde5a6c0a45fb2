package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdnverb/dsp/delay"
	"github.com/cwbudde/algo-fdnverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

func ExampleAllPassDemo() {
	ws, err := delay.NewWorkspace(delay.DefaultWorkspaceSize)
	if err != nil {
		panic(err)
	}
	d, err := reverb.NewAllPassDemo(ws)
	if err != nil {
		panic(err)
	}
	d.SetAmount(1)
	d.SetSize(3.5 / 4453)

	in := make([]fdn.Frame, 7)
	in[0].Left = 1
	out := make([]fdn.Frame, len(in))
	d.Process(in, out)

	wet := make([]float64, len(out))
	for i, f := range out {
		wet[i] = f.Right
	}
	fmt.Println(d.Length(), wet)

	// Output:
	// 3 [-0.75 0 0 0.4375 0 0 0.328125]
}

func ExamplePlate_Layout() {
	ws, err := delay.NewWorkspace(delay.DefaultWorkspaceSize)
	if err != nil {
		panic(err)
	}
	p, err := reverb.NewPlate(ws)
	if err != nil {
		panic(err)
	}

	layout := p.Layout()
	last := layout[len(layout)-1]
	fmt.Printf("regions=%d used=%d of %d\n", len(layout), last.End(), ws.Len())

	// Output:
	// regions=12 used=22530 of 32768
}
