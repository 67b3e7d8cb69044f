// Package notify shows transient one-line feedback to the user.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/logging"
)

// DefaultDuration is how long a notice stays visible.
const DefaultDuration = 5 * time.Second

// Kind is the notice flavor, used as a CSS class and terminal color.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is one piece of feedback.
type Notice struct {
	Message string
	Kind    Kind
	At      time.Time
	seq     uint64
}

// Listener is called synchronously for every notice shown.
type Listener func(Notice)

// Notifier holds at most one visible notice and hides it after a delay.
// A newer notice replaces the current one and restarts the delay.
type Notifier struct {
	mu        sync.Mutex
	current   Notice
	visible   bool
	seq       uint64
	duration  time.Duration
	timer     *time.Timer
	listeners []Listener
	logger    *logging.Logger
}

// New creates a Notifier. A non-positive duration means DefaultDuration.
func New(duration time.Duration, logger *logging.Logger) *Notifier {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Notifier{duration: duration, logger: logger}
}

// Listen registers fn to receive every future notice.
func (n *Notifier) Listen(fn Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// Success shows a success notice.
func (n *Notifier) Success(ctx context.Context, msg string) {
	n.Notify(ctx, KindSuccess, msg)
}

// Error shows an error notice.
func (n *Notifier) Error(ctx context.Context, msg string) {
	n.Notify(ctx, KindError, msg)
}

// Notify shows msg and schedules it to be hidden.
func (n *Notifier) Notify(ctx context.Context, kind Kind, msg string) {
	n.mu.Lock()
	n.seq++
	notice := Notice{Message: msg, Kind: kind, At: time.Now(), seq: n.seq}
	n.current = notice
	n.visible = true

	if n.timer != nil {
		n.timer.Stop()
	}
	seq := n.seq
	n.timer = time.AfterFunc(n.duration, func() { n.hide(seq) })

	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	n.logger.Debug(ctx, "notice shown", zap.String("kind", string(kind)), zap.String("message", msg))

	for _, fn := range listeners {
		fn(notice)
	}
}

// hide clears the notice only if nothing newer was shown since.
func (n *Notifier) hide(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq == seq {
		n.visible = false
	}
}

// Dismiss hides the current notice immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
	if n.timer != nil {
		n.timer.Stop()
	}
}

// Current returns the visible notice, if any.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.visible
}

// Duration returns how long notices stay visible.
func (n *Notifier) Duration() time.Duration {
	return n.duration
}
