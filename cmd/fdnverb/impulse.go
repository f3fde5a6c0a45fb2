package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/audio"
	"github.com/cwbudde/algo-fdnverb/measure/ir"
)

func (a *app) impulseCmd() *cobra.Command {
	var length float64

	cmd := &cobra.Command{
		Use:   "impulse [out.wav]",
		Short: "Capture a model's impulse response and report decay metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ""
			if len(args) == 1 {
				out = args[0]
			}
			return a.impulse(length, out)
		},
	}
	cmd.Flags().Float64VarP(&length, "length", "l", 3, "capture length in seconds")
	return cmd
}

func (a *app) impulse(seconds float64, outPath string) error {
	n := int(math.Round(seconds * a.cfg.SampleRate))
	if n <= 0 {
		return fmt.Errorf("%w: %v s", ir.ErrInvalidLength, seconds)
	}

	h, err := a.newHost()
	if err != nil {
		return err
	}
	model, err := h.Tuned(a.cfg.ModelID())
	if err != nil {
		return err
	}

	resp, err := ir.Capture(model, n, a.cfg.BlockSize)
	if err != nil {
		return err
	}

	an := ir.NewAnalyzer(resp.SampleRate)
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(a.stdout, "%s: %d frames at %.0f Hz\n", model.Name(), n, resp.SampleRate)
	fmt.Fprintln(tw, "CH\tRT60 s\tEDT s\tC50 dB\tC80 dB\tD50\tTS ms\tSPREAD dB\t")
	for _, ch := range []struct {
		name string
		data []float64
	}{
		{"L", resp.Left},
		{"R", resp.Right},
	} {
		m, err := an.Analyze(ch.data)
		if err != nil {
			return fmt.Errorf("fdnverb: analyze %s: %w", ch.name, err)
		}
		spread := math.Inf(1)
		if mag, err := ir.MagnitudeResponse(ch.data, 0); err == nil {
			spread = ir.SpreadDB(mag)
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.2f\t%.2f\t%.3f\t%.1f\t%.2f\t\n",
			ch.name, m.RT60, m.EDT, m.C50, m.C80, m.D50, m.CenterTime*1000, spread)
		if m.RT60 <= 0 {
			a.logger.Warn("no measurable decay", "channel", ch.name, "err", ir.ErrNoDecay)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if outPath == "" {
		return nil
	}

	frames := make([]fdn.Frame, n)
	for i := range frames {
		frames[i] = fdn.Frame{Left: resp.Left[i], Right: resp.Right[i]}
	}
	if err := audio.WriteWAVFile(outPath, frames, int(resp.SampleRate), a.cfg.Render.BitDepth); err != nil {
		return err
	}
	a.logger.Info("impulse response written", "out", outPath, "frames", n)
	return nil
}
