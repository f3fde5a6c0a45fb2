package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/audio"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		tail     float64
		bitDepth int
	)

	cmd := &cobra.Command{
		Use:   "render <in.wav> <out.wav>",
		Short: "Process a WAV file through a reverb model",
		Long: "Render reads a WAV file, runs it through the selected model at the\n" +
			"file's sample rate and writes dry plus reverb to a stereo WAV file.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("tail") {
				a.cfg.Render.TailSeconds = tail
			}
			if cmd.Flags().Changed("bit-depth") {
				a.cfg.Render.BitDepth = bitDepth
			}
			return a.render(args[0], args[1])
		},
	}
	cmd.Flags().Float64Var(&tail, "tail", 0, "seconds of silence appended to let the reverb ring out")
	cmd.Flags().IntVar(&bitDepth, "bit-depth", 0, "output bit depth: 16, 24 or 32")
	return cmd
}

func (a *app) render(inPath, outPath string) error {
	clip, err := audio.ReadWAVFile(inPath)
	if err != nil {
		return err
	}

	a.cfg.SampleRate = float64(clip.SampleRate)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	h, err := a.newHost()
	if err != nil {
		return err
	}

	tail := int(math.Round(a.cfg.Render.TailSeconds * a.cfg.SampleRate))
	in := make([]fdn.Frame, len(clip.Frames)+tail)
	copy(in, clip.Frames)
	out := make([]fdn.Frame, len(in))
	copy(out, in)

	h.Process(in, out)

	peak := 0.0
	for _, f := range out {
		peak = max(peak, math.Abs(f.Left), math.Abs(f.Right))
	}
	if peak > 1 {
		a.logger.Warn("output clipped", "peak", peak)
	}

	if err := audio.WriteWAVFile(outPath, out, clip.SampleRate, a.cfg.Render.BitDepth); err != nil {
		return err
	}

	a.logger.Info("rendered",
		"in", inPath,
		"out", outPath,
		"model", h.Active(),
		"frames", len(out),
		"seconds", float64(len(out))/a.cfg.SampleRate,
		"peak", peak,
	)
	return nil
}
