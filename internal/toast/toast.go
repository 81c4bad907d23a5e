package toast

import (
	"sync"
	"time"
)

// DefaultDuration is how long a message stays visible.
const DefaultDuration = 3000 * time.Millisecond

// Timer is the part of *time.Timer the toast needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

// State is a point-in-time view of the toast.
type State struct {
	Message   string     `json:"message"`
	Visible   bool       `json:"visible"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Option configures a Toast.
type Option func(*Toast)

// WithDuration overrides DefaultDuration.
func WithDuration(d time.Duration) Option {
	return func(t *Toast) {
		if d > 0 {
			t.duration = d
		}
	}
}

// WithAfterFunc replaces the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(t *Toast) {
		t.afterFunc = fn
	}
}

// WithClock replaces time.Now for ExpiresAt.
func WithClock(now func() time.Time) Option {
	return func(t *Toast) {
		t.now = now
	}
}

// Toast is a single transient notification. At most one message is visible;
// showing a new one replaces it and restarts the countdown.
type Toast struct {
	mu         sync.Mutex
	duration   time.Duration
	afterFunc  AfterFunc
	now        func() time.Time
	state      State
	timer      Timer
	generation uint64
	closed     bool
}

// New creates a hidden toast.
func New(opts ...Option) *Toast {
	t := &Toast{
		duration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Duration returns the configured display duration.
func (t *Toast) Duration() time.Duration {
	return t.duration
}

// Show displays message for the configured duration.
func (t *Toast) Show(message string) {
	t.ShowFor(message, t.duration)
}

// ShowFor displays message for d. Calls after Close are ignored.
func (t *Toast) ShowFor(message string, d time.Duration) {
	if d <= 0 {
		d = t.duration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.stopLocked()
	t.generation++
	gen := t.generation

	expiresAt := t.now().Add(d)
	t.state = State{
		Message:   message,
		Visible:   true,
		ExpiresAt: &expiresAt,
	}
	t.timer = t.afterFunc(d, func() { t.expire(gen) })
}

// Dismiss hides the current message immediately.
func (t *Toast) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.generation++
	t.state = State{}
}

// Current returns the visible message, if any.
func (t *Toast) Current() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close cancels any pending dismissal and hides the toast. Later Show calls are ignored.
func (t *Toast) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.generation++
	t.state = State{}
	t.closed = true
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A timer that fired while being replaced must not hide the newer message.
	if gen != t.generation {
		return
	}
	t.timer = nil
	t.state = State{}
}

func (t *Toast) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
