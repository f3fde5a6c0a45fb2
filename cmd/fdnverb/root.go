package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
	"github.com/cwbudde/algo-fdnverb/internal/config"
	"github.com/cwbudde/algo-fdnverb/internal/host"
)

// app carries the global flags and the resolved preset into every command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath    string
	model         string
	interpolation string
	logLevel      string
	sampleRate    float64
	blockSize     int
	controls      host.Controls

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fdnverb",
		Short:         "Feedback-delay-network reverbs on a shared delay workspace",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML preset to load")
	pf.StringVarP(&a.model, "model", "m", "", "reverb model: shimmer, plate or allpass-demo")
	pf.StringVar(&a.interpolation, "interpolation", "", "fractional read kernel: linear or hermite")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.Float64VarP(&a.sampleRate, "sample-rate", "r", 0, "processing sample rate in Hz")
	pf.IntVarP(&a.blockSize, "block-size", "b", 0, "frames per processing block")
	pf.Float64Var(&a.controls.Strength, "strength", 0, "strength knob in [0, 1]")
	pf.Float64Var(&a.controls.Size, "size", 0, "size knob in [0, 1]")
	pf.Float64Var(&a.controls.Shape, "shape", 0, "shape knob in [0, 1]")

	root.AddCommand(
		a.modelsCmd(),
		a.renderCmd(),
		a.impulseCmd(),
		a.liveCmd(),
		a.devicesCmd(),
	)
	return root
}

// load resolves the preset: defaults, then the --config file, then any
// global flag the user set.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("model") {
		cfg.Model = a.model
	}
	if f.Changed("interpolation") {
		cfg.Interpolation = a.interpolation
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("sample-rate") {
		cfg.SampleRate = a.sampleRate
	}
	if f.Changed("block-size") {
		cfg.BlockSize = a.blockSize
	}
	if f.Changed("strength") {
		cfg.Controls.Strength = a.controls.Strength
	}
	if f.Changed("size") {
		cfg.Controls.Size = a.controls.Size
	}
	if f.Changed("shape") {
		cfg.Controls.Shape = a.controls.Shape
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("preset loaded",
		"config", a.configPath,
		"model", cfg.Model,
		"interpolation", cfg.Interpolation,
		"sampleRate", cfg.SampleRate,
		"blockSize", cfg.BlockSize,
	)
	return nil
}

// newHost builds a host for the resolved preset with its controls applied.
func (a *app) newHost() (*host.Host, error) {
	h, err := host.New(a.cfg.Processor(), a.cfg.ModelID(), fdn.WithInterpolation(a.cfg.InterpolationMode()))
	if err != nil {
		return nil, fmt.Errorf("fdnverb: %w", err)
	}
	h.SetControls(a.cfg.Controls)
	return h, nil
}
