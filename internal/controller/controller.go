package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/logging"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/remote"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

// Notice texts.
const (
	MsgLoadError     = "Error loading projects"
	MsgLoadFailed    = "Failed to load projects"
	MsgCreated       = "Project created successfully"
	MsgCreateFailed  = "Failed to create project"
	MsgUpdated       = "Project updated successfully"
	MsgUpdateFailed  = "Failed to update project"
	MsgDeleted       = "Project deleted successfully"
	MsgDeleteFailed  = "Failed to delete project"
	MsgConfirmDelete = "Are you sure you want to delete this project?"
)

const instrumentationName = "github.com/fyrsmithlabs/projectdeck/internal/controller"

// Operation names used in logs, spans and metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpEdit   = "edit"
	OpDelete = "delete"
)

// Service is the remote project service.
type Service interface {
	List(ctx context.Context) ([]project.Project, error)
	Create(ctx context.Context, command string) error
	Edit(ctx context.Context, id project.ID, command string) error
	Delete(ctx context.Context, id project.ID) error
}

// Notifier shows transient feedback.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Renderer re-renders every surface from the cache.
type Renderer interface {
	Render() render.View
}

// ErrNotEditable is returned when the edit surface is requested for a
// project whose status does not allow edits.
var ErrNotEditable = errors.New("project is not editable")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed is a Confirmer with a fixed answer.
type Confirmed bool

// Confirm returns the fixed answer.
func (c Confirmed) Confirm(context.Context, string) bool { return bool(c) }

// Options configures a Controller.
type Options struct {
	Service  Service
	Cache    *project.Cache
	Renderer Renderer
	Notifier Notifier
	Logger   *logging.Logger
	Metrics  *Metrics
	// Tracer defaults to the global otel tracer provider.
	Tracer trace.Tracer

	// OrderedReloads discards list responses that arrive after a newer
	// reload has committed. Off by default: the last response wins.
	OrderedReloads bool
}

// Controller runs list, create, edit and delete.
type Controller struct {
	service  Service
	cache    *project.Cache
	renderer Renderer
	notifier Notifier
	logger   *logging.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	ordered  bool

	loading atomic.Int32

	createForm form
	editForm   form
	deletes    KeyedGuard
}

// New creates a Controller. Service, Cache, Renderer and Notifier are
// required.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Service == nil:
		return nil, errors.New("controller: service is required")
	case opts.Cache == nil:
		return nil, errors.New("controller: cache is required")
	case opts.Renderer == nil:
		return nil, errors.New("controller: renderer is required")
	case opts.Notifier == nil:
		return nil, errors.New("controller: notifier is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &Controller{
		service:  opts.Service,
		cache:    opts.Cache,
		renderer: opts.Renderer,
		notifier: opts.Notifier,
		logger:   logger.Named("controller"),
		metrics:  opts.Metrics,
		tracer:   tracer,
		ordered:  opts.OrderedReloads,
	}, nil
}

// Cache returns the project cache.
func (c *Controller) Cache() *project.Cache {
	return c.cache
}

// Loading reports whether a list reload is in flight.
func (c *Controller) Loading() bool {
	return c.loading.Load() > 0
}

// OpenCreate opens the create surface with empty fields.
func (c *Controller) OpenCreate() {
	c.createForm.openFor(project.Project{})
}

// CloseCreate closes the create surface and clears its fields.
func (c *Controller) CloseCreate() {
	c.createForm.close()
}

// CreateForm returns the create surface state.
func (c *Controller) CreateForm() FormState {
	return c.createForm.state()
}

// OpenEdit opens the edit surface for id. The command field starts blank;
// the project's name and current command are exposed read-only via Target.
// Only Completed projects can be edited.
func (c *Controller) OpenEdit(id project.ID) error {
	p, err := c.cache.Find(id)
	if err != nil {
		return err
	}
	if !p.Status.Editable() {
		return fmt.Errorf("%w: %s is %s", ErrNotEditable, id, p.Status)
	}
	c.editForm.openFor(p)
	return nil
}

// CloseEdit closes the edit surface and clears its fields.
func (c *Controller) CloseEdit() {
	c.editForm.close()
}

// EditForm returns the edit surface state.
func (c *Controller) EditForm() FormState {
	return c.editForm.state()
}

// DeleteBusy reports whether a delete of id is in flight.
func (c *Controller) DeleteBusy(id project.ID) bool {
	return c.deletes.Busy(id)
}

// Load fetches the project list. On success the cache is replaced and every
// surface re-rendered; on failure an error notice is shown and the cache is
// left as it was.
func (c *Controller) Load(ctx context.Context) (outcome Outcome) {
	ctx = logging.WithOperation(ctx, OpList)
	ctx, span := c.startSpan(ctx, OpList)
	defer func() { endSpan(span, outcome) }()

	c.loading.Add(1)
	c.gaugeLoading()
	defer func() {
		c.loading.Add(-1)
		c.gaugeLoading()
	}()

	var token project.Token
	if c.ordered {
		token = c.cache.Begin()
	}

	start := time.Now()
	list, err := c.service.List(ctx)
	c.observeDuration(OpList, start)

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, remote.ErrUnsuccessful) {
			c.logger.Warn(ctx, "list reported failure", zap.Error(err))
			c.notifier.Error(ctx, MsgLoadError)
		} else {
			c.logger.Error(ctx, "error loading projects", zap.Error(err))
			c.notifier.Error(ctx, MsgLoadFailed)
		}
		c.metrics.observe(OpList, OutcomeFailed)
		return OutcomeFailed
	}

	if c.ordered {
		if !c.cache.Commit(token, list) {
			c.logger.Debug(ctx, "discarding stale list response", zap.Uint64("token", uint64(token)))
			c.metrics.observe(OpList, OutcomeSuperseded)
			return OutcomeSuperseded
		}
	} else if dropped := c.cache.ReplaceAll(list); dropped > 0 {
		c.logger.Warn(ctx, "duplicate project ids in list response", zap.Int("dropped", dropped))
	}

	if c.metrics != nil {
		c.metrics.CachedProjects.Set(float64(c.cache.Len()))
	}
	c.renderer.Render()

	c.logger.Debug(ctx, "projects loaded", zap.Int("count", len(list)))
	c.metrics.observe(OpList, OutcomeSucceeded)
	return OutcomeSucceeded
}

// Create submits a new project. A command that is empty after trimming is
// rejected without a request or a notice.
func (c *Controller) Create(ctx context.Context, command string) Outcome {
	ctx = logging.WithOperation(ctx, OpCreate)

	command = strings.TrimSpace(command)
	if command == "" {
		c.metrics.observe(OpCreate, OutcomeRejected)
		return OutcomeRejected
	}
	c.createForm.setDraft(command)

	return c.submit(ctx, OpCreate, &c.createForm.guard,
		func(ctx context.Context) error { return c.service.Create(ctx, command) },
		MsgCreated, MsgCreateFailed,
		c.createForm.close,
	)
}

// Edit applies command to project id. A command that is empty after
// trimming is rejected without a request or a notice.
func (c *Controller) Edit(ctx context.Context, id project.ID, command string) Outcome {
	ctx = logging.WithOperation(ctx, OpEdit)

	command = strings.TrimSpace(command)
	if id == "" || command == "" {
		c.metrics.observe(OpEdit, OutcomeRejected)
		return OutcomeRejected
	}
	c.editForm.setDraft(command)

	return c.submit(ctx, OpEdit, &c.editForm.guard,
		func(ctx context.Context) error { return c.service.Edit(ctx, id, command) },
		MsgUpdated, MsgUpdateFailed,
		func() { c.editForm.closeIf(id) },
	)
}

// Delete removes project id after confirm agrees. A nil confirm declines.
func (c *Controller) Delete(ctx context.Context, id project.ID, confirm Confirmer) Outcome {
	ctx = logging.WithOperation(ctx, OpDelete)

	if id == "" {
		c.metrics.observe(OpDelete, OutcomeRejected)
		return OutcomeRejected
	}
	if confirm == nil || !confirm.Confirm(ctx, MsgConfirmDelete) {
		c.metrics.observe(OpDelete, OutcomeDeclined)
		return OutcomeDeclined
	}

	return c.submit(ctx, OpDelete, c.deletes.For(id),
		func(ctx context.Context) error { return c.service.Delete(ctx, id) },
		MsgDeleted, MsgDeleteFailed,
		func() { c.editForm.closeIf(id) },
	)
}

// submit runs one guarded request. The guard is released before the
// follow-up reload so the form is usable again while the list refreshes.
func (c *Controller) submit(
	ctx context.Context,
	op string,
	guard Lock,
	call func(context.Context) error,
	successMsg, failMsg string,
	onSuccess func(),
) (outcome Outcome) {
	ctx, span := c.startSpan(ctx, op)
	defer func() { endSpan(span, outcome) }()

	if !guard.TryAcquire() {
		c.logger.Debug(ctx, "submission already in flight")
		c.metrics.observe(op, OutcomeBusy)
		return OutcomeBusy
	}

	outcome = func() Outcome {
		defer guard.Release()

		start := time.Now()
		err := call(ctx)
		c.observeDuration(op, start)

		if err != nil {
			span.RecordError(err)
			c.notifyFailure(ctx, err, failMsg)
			return OutcomeFailed
		}
		c.notifier.Success(ctx, successMsg)
		onSuccess()
		return OutcomeSucceeded
	}()

	c.metrics.observe(op, outcome)
	if outcome == OutcomeSucceeded {
		c.Load(ctx)
	}
	return outcome
}

// notifyFailure prefers the server's message and falls back to generic.
func (c *Controller) notifyFailure(ctx context.Context, err error, generic string) {
	var serr *remote.ServerError
	if errors.As(err, &serr) {
		c.logger.Warn(ctx, "remote reported failure", zap.String("message", serr.Message))
		if serr.Message != "" {
			c.notifier.Error(ctx, serr.Message)
			return
		}
		c.notifier.Error(ctx, generic)
		return
	}
	c.logger.Error(ctx, "request failed", zap.Error(err))
	c.notifier.Error(ctx, generic)
}

func (c *Controller) observeDuration(op string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (c *Controller) gaugeLoading() {
	if c.metrics == nil {
		return
	}
	c.metrics.Loading.Set(float64(c.loading.Load()))
}

func (c *Controller) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "projectdeck."+op, trace.WithAttributes(attribute.String("operation", op)))
}

func endSpan(span trace.Span, outcome Outcome) {
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	if outcome == OutcomeFailed {
		span.SetStatus(codes.Error, outcome.String())
	}
	span.End()
}
