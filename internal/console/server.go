// Package console serves the project manager web page.
package console

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/controller"
	"github.com/fyrsmithlabs/projectdeck/internal/logging"
	"github.com/fyrsmithlabs/projectdeck/internal/notify"
)

// Config holds the listener configuration.
type Config struct {
	Host string
	Port int
}

// Options are the server dependencies.
type Options struct {
	Controller *controller.Controller
	Notifier   *notify.Notifier
	Page       *Page
	Logger     *logging.Logger
	Metrics    *HTTPMetrics
	Config     *Config
}

// Server is the web console.
type Server struct {
	echo     *echo.Echo
	ctrl     *controller.Controller
	notifier *notify.Notifier
	page     *Page
	logger   *logging.Logger
	config   *Config
}

// NewServer creates the console server. The page must already be attached
// to the renderer the controller uses.
func NewServer(opts Options) (*Server, error) {
	if opts.Controller == nil {
		return nil, errors.New("controller is required")
	}
	if opts.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if opts.Page == nil {
		return nil, errors.New("page is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required for request tracking and debugging")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8088}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		ctrl:     opts.Controller,
		notifier: opts.Notifier,
		page:     opts.Page,
		logger:   opts.Logger.Named("console"),
		config:   cfg,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if opts.Metrics != nil {
		e.Use(opts.Metrics.MetricsMiddleware())
	}
	e.Use(s.requestLogger())

	s.registerRoutes()
	return s, nil
}

// requestLogger logs every request and puts the request id on the context.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			s.logger.Info(c.Request().Context(), "http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)
			return nil
		}
	}
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/refresh", s.handleRefresh)

	s.echo.GET("/projects/new", s.handleOpenCreate)
	s.echo.POST("/projects/new/close", s.handleCloseCreate)
	s.echo.POST("/projects", s.handleCreate)

	s.echo.GET("/projects/:id/edit", s.handleOpenEdit)
	s.echo.POST("/projects/:id/edit/close", s.handleCloseEdit)
	s.echo.POST("/projects/:id/edit", s.handleEdit)

	s.echo.GET("/projects/:id/delete", s.handleConfirmDelete)
	s.echo.POST("/projects/:id/delete", s.handleDelete)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Start serves until Shutdown. http.ErrServerClosed is not reported.
func (s *Server) Start() error {
	addr := s.Addr()
	s.logger.Info(context.Background(), "starting web console", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("console server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down web console")
	return s.echo.Shutdown(ctx)
}
