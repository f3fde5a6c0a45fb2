package core

// Firmware-sized defaults: a 48-sample block and a 32768-sample workspace.
const (
	DefaultSampleRate    = 48000
	DefaultBlockSize     = 48
	DefaultWorkspaceSize = 32768
)

// ProcessorConfig defines common processing settings.
type ProcessorConfig struct {
	SampleRate    float64
	BlockSize     int
	WorkspaceSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:    DefaultSampleRate,
		BlockSize:     DefaultBlockSize,
		WorkspaceSize: DefaultWorkspaceSize,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithWorkspaceSize sets the number of samples in the shared workspace.
func WithWorkspaceSize(samples int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if samples > 0 {
			cfg.WorkspaceSize = samples
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
