package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/config"
	"github.com/fyrsmithlabs/projectdeck/internal/controller"
	"github.com/fyrsmithlabs/projectdeck/internal/logging"
	"github.com/fyrsmithlabs/projectdeck/internal/notify"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/remote"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
	"github.com/fyrsmithlabs/projectdeck/internal/telemetry"
)

// app holds the wired components shared by every command.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	telemetry *telemetry.Telemetry
	client    *remote.Client
	cache     *project.Cache
	renderer  *render.Renderer
	notifier  *notify.Notifier
	ctrl      *controller.Controller
}

type appOptions struct {
	// quiet discards logs that would go to the terminal.
	quiet bool
}

// newApp loads configuration and wires the components.
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Remote.BaseURL = serverURL
	}

	logger, err := initLogger(cfg, opts.quiet)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	if cfg.Logging.OTEL {
		logger = logger.WithOTEL("projectdeck", tel.LoggerProvider())
	}

	client, err := remote.New(cfg.Remote.BaseURL,
		remote.WithLogger(logger.Named("remote")),
		remote.WithRateLimit(cfg.Remote.RateLimit, cfg.Remote.Burst),
	)
	if err != nil {
		return nil, err
	}

	cache := project.NewCache()
	renderer := render.New(cache, time.Local)
	notifier := notify.New(cfg.Notify.Duration.Duration(), logger)

	ctrl, err := controller.New(controller.Options{
		Service:        client,
		Cache:          cache,
		Renderer:       renderer,
		Notifier:       notifier,
		Logger:         logger,
		Metrics:        controller.NewMetrics(),
		Tracer:         tel.Tracer("github.com/fyrsmithlabs/projectdeck"),
		OrderedReloads: cfg.Reload.Ordered,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "projectdeck initialized",
		zap.String("remote", client.BaseURL()),
		zap.Bool("ordered_reloads", cfg.Reload.Ordered),
		zap.Bool("telemetry", tel.Enabled()))

	return &app{
		cfg:       cfg,
		logger:    logger,
		telemetry: tel,
		client:    client,
		cache:     cache,
		renderer:  renderer,
		notifier:  notifier,
		ctrl:      ctrl,
	}, nil
}

func initLogger(cfg *config.Config, quiet bool) (*logging.Logger, error) {
	if quiet && (cfg.Logging.Output == logging.OutputStderr || cfg.Logging.Output == logging.OutputStdout) {
		return logging.NewNop(), nil
	}
	return logging.NewLogger(cfg.Logging)
}

// printNotices echoes every notice to w.
func (a *app) printNotices(w io.Writer) {
	a.notifier.Listen(func(n notify.Notice) {
		if n.Kind == notify.KindError {
			fmt.Fprintln(w, "✗ "+n.Message)
			return
		}
		fmt.Fprintln(w, "✓ "+n.Message)
	})
}

// Close flushes telemetry and logs.
func (a *app) Close() error {
	var errs []error
	if err := a.telemetry.Shutdown(context.Background()); err != nil {
		errs = append(errs, err)
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
