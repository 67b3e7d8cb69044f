// Package remote is the HTTP client for the remote project service.
//
// Every endpoint answers with a JSON envelope {"success": bool, ...}.
// A response that cannot be decoded as an envelope is an error just like a
// transport failure; an envelope with success=false becomes a *ServerError.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/projectdeck/internal/logging"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// HeaderRequestID carries the correlation ID of an outbound request.
const HeaderRequestID = "X-Request-ID"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// ErrUnsuccessful matches every *ServerError.
var ErrUnsuccessful = errors.New("remote reported failure")

// ServerError is an envelope with success=false.
type ServerError struct {
	Op      string
	Message string // server-supplied message, may be empty
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrUnsuccessful)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrUnsuccessful, e.Message)
}

// Is makes errors.Is(err, ErrUnsuccessful) true.
func (e *ServerError) Is(target error) bool {
	return target == ErrUnsuccessful
}

// Envelope is the common response wrapper.
type Envelope struct {
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
	Projects []project.Project `json:"projects,omitempty"`
}

// CommandRequest is the body of create and edit requests.
type CommandRequest struct {
	Command string `json:"command"`
}

// Client talks to the remote project service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	logger  *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit spaces outbound requests to perSecond with the given burst.
// perSecond <= 0 disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the service at baseURL.
// The default HTTP client has no timeout: requests run until the server
// answers, the transport fails or ctx is cancelled.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches the full project collection in server order.
// A successful envelope without a projects field yields an empty list.
func (c *Client) List(ctx context.Context) ([]project.Project, error) {
	env, err := c.do(ctx, "list", http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	if env.Projects == nil {
		return []project.Project{}, nil
	}
	return env.Projects, nil
}

// Create asks the service to start a new project.
func (c *Client) Create(ctx context.Context, command string) error {
	_, err := c.do(ctx, "create", http.MethodPost, "/api/projects/create", CommandRequest{Command: command})
	return err
}

// Edit asks the service to apply command to an existing project.
func (c *Client) Edit(ctx context.Context, id project.ID, command string) error {
	if id == "" {
		return project.ErrEmptyProjectID
	}
	path := "/api/projects/" + url.PathEscape(id.String()) + "/edit"
	_, err := c.do(ctx, "edit", http.MethodPost, path, CommandRequest{Command: command})
	return err
}

// Delete asks the service to remove a project.
func (c *Client) Delete(ctx context.Context, id project.ID) error {
	if id == "" {
		return project.ErrEmptyProjectID
	}
	path := "/api/projects/" + url.PathEscape(id.String()) + "/delete"
	_, err := c.do(ctx, "delete", http.MethodDelete, path, nil)
	return err
}

// do issues one request and decodes the envelope. HTTP status codes are not
// interpreted: a JSON envelope on an error status is honored as-is.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Envelope{}, fmt.Errorf("%s: rate limiter error: %w", op, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	ctx = logging.WithRequestID(ctx, requestID)

	c.logger.Trace(ctx, "remote request", zap.String("method", method), zap.String("url", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: failed to send request to %s: %w", op, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%s: failed to decode response (status %d): %w", op, resp.StatusCode, err)
	}

	c.logger.Debug(ctx, "remote response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", env.Success))

	if !env.Success {
		return env, &ServerError{Op: op, Message: env.Error}
	}
	return env, nil
}
