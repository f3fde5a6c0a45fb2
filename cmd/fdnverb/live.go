package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/cwbudde/algo-fdnverb/internal/audio"
	"github.com/cwbudde/algo-fdnverb/internal/config"
	"github.com/cwbudde/algo-fdnverb/internal/host"
)

var errQuit = errors.New("quit requested")

func (a *app) liveCmd() *cobra.Command {
	var (
		inDev, outDev int
		lowLatency    bool
		noKeys        bool
	)

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Run the reverb on an audio interface",
		Long: "Live processes the input device through the selected model in real time.\n" +
			"Press space to switch to the next model and q to quit. With --config the\n" +
			"preset file is watched and its controls are applied when it changes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if f.Changed("input-device") {
				a.cfg.Live.InputDevice = inDev
			}
			if f.Changed("output-device") {
				a.cfg.Live.OutputDevice = outDev
			}
			if f.Changed("low-latency") {
				a.cfg.Live.LowLatency = lowLatency
			}
			return a.live(cmd.Context(), !noKeys)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&inDev, "input-device", "i", audio.DefaultDevice, "input device ID, see 'devices'")
	f.IntVarP(&outDev, "output-device", "o", audio.DefaultDevice, "output device ID, see 'devices'")
	f.BoolVarP(&lowLatency, "low-latency", "l", false, "use the devices' low latency settings")
	f.BoolVar(&noKeys, "no-keys", false, "do not read model switches from the keyboard")
	return cmd
}

func (a *app) live(ctx context.Context, keys bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := audio.Initialize(); err != nil {
		return err
	}
	defer audio.Terminate()

	h, err := a.newHost()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	keys = keys && term.IsTerminal(fd)
	if keys {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, old)
		// Raw mode drops the implicit carriage return.
		a.logger = slog.New(slog.NewTextHandler(crlfWriter{a.stderr}, &slog.HandlerOptions{Level: a.logLevelOrInfo()}))
	}

	stream, err := audio.Open(h, a.cfg.Live, a.logger)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	a.logger.Info("live", "model", h.Active(), "keys", keys)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stream.Monitor(gctx, time.Second)
	})
	if a.configPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, a.configPath, a.logger, presetApplier(h, a.cfg))
		})
	}
	if keys {
		g.Go(func() error {
			return watchKeys(gctx, os.Stdin, h, a.logger)
		})
	}

	err = g.Wait()
	a.logger.Info("stopped", "blocks", stream.Blocks(), "dropped", stream.Dropped(), "switches", h.Switches())
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *app) logLevelOrInfo() slog.Level {
	level, err := a.cfg.SlogLevel()
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// presetApplier returns a reload callback that always applies the controls
// and switches the model only when the preset's model changed, so a model
// chosen from the keyboard survives edits to other fields.
func presetApplier(h *host.Host, initial *config.Config) func(*config.Config) {
	last := initial.ModelID()
	return func(c *config.Config) {
		h.SetControls(c.Controls)
		if m := c.ModelID(); m != last {
			last = m
			_ = h.RequestModel(m)
		}
	}
}

// watchKeys maps key presses to model switches until ctx is done, r is
// exhausted or the quit key is pressed.
func watchKeys(ctx context.Context, r io.Reader, h *host.Host, logger *slog.Logger) error {
	pressed := make(chan byte)
	go func() {
		defer close(pressed)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n == 1 {
				select {
				case pressed <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-pressed:
			if !ok {
				return nil
			}
			switch b {
			case ' ', '\r', '\n':
				m := h.RequestNextModel()
				logger.Info("model requested", "model", m)
			case 'q', 'Q', 0x03:
				return errQuit
			}
		}
	}
}

type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	buf := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == '\n' {
			buf = append(buf, '\r')
		}
		buf = append(buf, b)
	}
	if _, err := c.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}
