package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/demo"
	"github.com/vango-dev/vroute/pkg/assets"
	"github.com/vango-dev/vroute/pkg/hydrate"
	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Serve the demo application with SSR and live sessions.

Configuration is read from vroute.json (when present) and VROUTE_*
environment variables.

Examples:
  vroute serve
  vroute serve --addr=:8080
  VROUTE_SECRET_KEY=... vroute serve --config=deploy/vroute.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vroute.json (default ./vroute.json if present)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	srv, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" && config.Exists(".") {
		path = config.ConfigFileName
	}
	return config.Load(path)
}

// newServer wires the demo application to the configured stack.
func newServer(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	resolver, err := loadAssets(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sc := server.Config{
		Address:     cfg.Addr,
		BaseURL:     cfg.ParsedBaseURL(),
		Table:       demo.Table(),
		Children:    demo.Children(logger),
		Title:       demo.Title,
		Lang:        cfg.Lang,
		DisableLive: cfg.DisableLive,
		Pretty:      cfg.Pretty,
		Assets:      resolver,
		Scripts:     cfg.Assets.Scripts,
		StyleSheets: cfg.Assets.StyleSheets,
		AssetsDir:   cfg.Assets.Dir,
		AssetPrefix: cfg.Assets.Prefix,
		Logger:      logger,
	}
	if cfg.Title != "" {
		sc.Title = cfg.Title
	}

	if cfg.SecretKey != "" {
		sc.Signer = hydrate.NewSigner([]byte(cfg.SecretKey))
	} else if !cfg.DisableLive {
		logger.Warn("VROUTE_SECRET_KEY is not set; live sessions will re-render on connect")
	}

	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sc.Metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		sc.Gatherer = reg
	}

	return server.New(sc)
}

// loadAssets returns a manifest resolver, or nil for the server's
// passthrough default when no manifest is configured.
func loadAssets(ctx context.Context, cfg *config.Config) (assets.Resolver, error) {
	var (
		m   *assets.Manifest
		err error
	)
	switch {
	case cfg.Assets.S3.Enabled():
		m, err = assets.LoadS3(ctx, cfg.S3Client(), cfg.Assets.S3.Bucket, cfg.Assets.S3.Key)
	case cfg.Assets.Manifest != "":
		m, err = assets.Load(cfg.Assets.Manifest)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return assets.NewResolver(m, cfg.Assets.Prefix), nil
}
