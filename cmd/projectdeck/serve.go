package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/console"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web console",
		Long: `Serve the project manager web page, a health endpoint and Prometheus
metrics. The project list is refreshed every watch.interval.

Examples:
  projectdeck serve
  projectdeck serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(ctxOf(cmd))
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					fmt.Fprintf(cmd.ErrOrStderr(), "Received signal %v, shutting down gracefully...\n", sig)
					cancel()
				case <-ctx.Done():
				}
			}()

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("host") {
				a.cfg.Console.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Console.Port = port
			}
			return runServer(ctx, a)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides console.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides console.port)")
	return cmd
}

// runServer serves until ctx is cancelled.
func runServer(ctx context.Context, a *app) error {
	page := console.NewPage()
	a.renderer.Attach(page)
	a.renderer.Render()

	srv, err := console.NewServer(console.Options{
		Controller: a.ctrl,
		Notifier:   a.notifier,
		Page:       page,
		Logger:     a.logger,
		Metrics:    console.NewHTTPMetrics(a.telemetry.Meter("github.com/fyrsmithlabs/projectdeck/internal/console"), a.logger),
		Config:     &console.Config{Host: a.cfg.Console.Host, Port: a.cfg.Console.Port},
	})
	if err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	go refreshLoop(ctx, a, a.cfg.Watch.Interval.Duration())

	a.logger.Info(ctx, "web console ready",
		zap.String("url", "http://"+srv.Addr()),
		zap.String("remote", a.client.BaseURL()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Console.ShutdownTimeout.Duration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("console shutdown: %w", err)
	}
	return <-errCh
}

// refreshLoop loads immediately and then every interval.
func refreshLoop(ctx context.Context, a *app, interval time.Duration) {
	a.ctrl.Load(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.ctrl.Load(ctx)
		}
	}
}
