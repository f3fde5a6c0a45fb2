// Package config loads fdnverb presets from YAML and watches them for
// changes while the live host runs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
	"github.com/cwbudde/algo-fdnverb/dsp/interp"
	"github.com/cwbudde/algo-fdnverb/internal/host"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Limits for the processing settings.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
	MaxBlockSize  = 8192
	MinBitDepth   = 16
	MaxBitDepth   = 32
)

// Config is one preset.
type Config struct {
	Model         string        `yaml:"model"`
	Interpolation string        `yaml:"interpolation"`
	LogLevel      string        `yaml:"log_level"`
	SampleRate    float64       `yaml:"sample_rate"`
	BlockSize     int           `yaml:"block_size"`
	WorkspaceSize int           `yaml:"workspace_size"`
	Controls      host.Controls `yaml:"controls"`
	Render        RenderConfig  `yaml:"render"`
	Live          LiveConfig    `yaml:"live"`
}

// RenderConfig holds settings for offline rendering.
type RenderConfig struct {
	TailSeconds float64 `yaml:"tail_seconds"` // silence appended to let the tail ring out
	BitDepth    int     `yaml:"bit_depth"`
}

// LiveConfig holds settings for the real-time stream.
type LiveConfig struct {
	InputDevice  int  `yaml:"input_device"`  // -1 for the system default
	OutputDevice int  `yaml:"output_device"` // -1 for the system default
	LowLatency   bool `yaml:"low_latency"`
}

// Default returns the reference preset: the shimmer at 48 kHz with
// 48-frame blocks and a 32768-sample workspace.
func Default() *Config {
	return &Config{
		Model:         host.ModelShimmer.String(),
		Interpolation: interp.Linear.String(),
		LogLevel:      "info",
		SampleRate:    core.DefaultSampleRate,
		BlockSize:     core.DefaultBlockSize,
		WorkspaceSize: core.DefaultWorkspaceSize,
		Controls:      host.Controls{Strength: 0.5, Size: 0.5, Shape: 0.5},
		Render: RenderConfig{
			TailSeconds: 2,
			BitDepth:    24,
		},
		Live: LiveConfig{
			InputDevice:  -1,
			OutputDevice: -1,
		},
	}
}

// Load reads the preset at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field and reports the first problem.
func (c *Config) Validate() error {
	if _, err := host.ParseModel(c.Model); err != nil {
		return fmt.Errorf("%w: model: %w", ErrInvalid, err)
	}
	if _, err := interp.ParseMode(c.Interpolation); err != nil {
		return fmt.Errorf("%w: interpolation: %w", ErrInvalid, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample_rate %v outside [%d, %d]", ErrInvalid, c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.BlockSize <= 0 || c.BlockSize > MaxBlockSize {
		return fmt.Errorf("%w: block_size %d outside [1, %d]", ErrInvalid, c.BlockSize, MaxBlockSize)
	}
	if c.WorkspaceSize <= 0 {
		return fmt.Errorf("%w: workspace_size must be > 0", ErrInvalid)
	}
	if c.Render.TailSeconds < 0 {
		return fmt.Errorf("%w: render.tail_seconds must be >= 0", ErrInvalid)
	}
	switch c.Render.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: render.bit_depth %d not one of 16, 24, 32", ErrInvalid, c.Render.BitDepth)
	}
	return nil
}

// ModelID returns the parsed model.
func (c *Config) ModelID() host.Model {
	m, _ := host.ParseModel(c.Model)
	return m
}

// InterpolationMode returns the parsed fractional-read kernel.
func (c *Config) InterpolationMode() interp.Mode {
	m, _ := interp.ParseMode(c.Interpolation)
	return m
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Processor returns the processing settings as a core config.
func (c *Config) Processor() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.BlockSize),
		core.WithWorkspaceSize(c.WorkspaceSize),
	)
}
