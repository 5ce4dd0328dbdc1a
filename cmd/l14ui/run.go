package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14ui/pkg/config"
	"l14ui/pkg/host"
	"l14ui/pkg/images"
	"l14ui/pkg/observability"
	"l14ui/pkg/render"
)

type runOptions struct {
	*rootOptions
	origin   string
	backend  string
	snapshot string
	cycles   int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run an entry script and drive the main loop",
		Long: `Run executes the entry script (a path or URL), then cycles the main loop:
queued fetch completions run, styles resolve and layout is recomputed.

With the headless backend the loop settles once every appended script has
run, optionally cycles --cycles more times, and can write a PNG snapshot.
With the fyne backend a window stays open until closed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			logger := observability.GetLogger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if cfg.Runtime.Backend == config.BackendFyne {
				if opts.snapshot != "" {
					logger.Warn("snapshot is only supported by the headless backend")
				}
				return runWindow(ctx, cfg, args[0], logger)
			}
			return runHeadless(ctx, cfg, args[0], opts.snapshot, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.origin, "origin", "", "base URL relative script sources resolve against")
	f.StringVar(&opts.backend, "backend", "", "widget backend: headless or fyne")
	f.StringVar(&opts.snapshot, "snapshot", "", "write a PNG of the final headless scene to this path")
	f.IntVar(&opts.cycles, "cycles", 0, "extra main-loop cycles to run after settling (headless)")
	return cmd
}

// load reads configuration and applies flags given on the command line.
func (o *runOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("origin") {
		cfg.Runtime.Origin = o.origin
	}
	if flags.Changed("backend") {
		cfg.Runtime.Backend = o.backend
	}
	if flags.Changed("cycles") {
		cfg.Runtime.MaxCycles = o.cycles
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runHeadless(ctx context.Context, cfg *config.Config, script, snapshot string, logger *zap.Logger) error {
	h, err := host.New(host.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.RunURI(ctx, script); err != nil {
		return err
	}
	h.Settle()
	if cfg.Runtime.MaxCycles > 0 {
		if err := h.Loop(ctx); err != nil {
			return err
		}
	}
	logger.Info("settled", zap.Int("cycles", h.Cycles()), zap.Strings("styles", h.Styles().Styles()))

	if snapshot == "" {
		return nil
	}
	width, height := h.Viewport()
	r := render.NewRenderer(int(width), int(height), h.Context().Measurer, images.NewLoader(h.Fetcher(), logger), logger)
	r.Render(ctx, h.Root().Widget())
	if err := r.SavePNG(snapshot); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	logger.Info("wrote snapshot", zap.String("path", snapshot))
	return nil
}
