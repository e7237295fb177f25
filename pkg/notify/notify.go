// Package notify fans out "settings changed" signals to registered observers.
//
// Observers are typically restart banners: NotifyAll reveals every banner and
// arms a one-shot acknowledgment hook on each. When the user acknowledges any
// of them, the file manager is restarted and all banners are hidden again.
package notify

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/introspection"
)

// Prompt is the text an observer shows while a change is pending.
type Prompt struct {
	Title   string
	Action  string
	Tooltip string
}

// DefaultPrompt is shown when no prompt is configured.
var DefaultPrompt = Prompt{
	Title:   "Restart Nautilus to apply changes.",
	Action:  "Restart",
	Tooltip: "Nautilus will be closed and restarted after clicking this button.",
}

// Observer is something that can display a pending-change prompt.
// Implementations must be comparable (pointer types), since Register
// deduplicates by identity.
type Observer interface {
	// Show reveals the prompt.
	Show(p Prompt)
	// Hide returns the observer to its un-notified state.
	Hide()
	// Arm installs the acknowledgment hook and returns a function removing it.
	Arm(ack func()) (disarm func())
}

// Restarter performs the side effect an acknowledgment asks for.
type Restarter interface {
	Restart(ctx context.Context) error
}

// RestarterFunc adapts a function to Restarter.
type RestarterFunc func(ctx context.Context) error

func (f RestarterFunc) Restart(ctx context.Context) error { return f(ctx) }

// registration pairs an observer with its armed hook. Observer callbacks
// are never invoked while Notifier.mu is held.
type registration struct {
	observer Observer

	mu     sync.Mutex
	disarm func()
}

// Notifier is the observer registry. Create it with New at startup and
// tear it down with Cleanup.
type Notifier struct {
	mu        sync.Mutex
	entries   []*registration
	restarter Restarter
	logger    *slog.Logger
	prompt    Prompt

	pending  bool
	notified int
	restarts int
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used for restart failures.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithPrompt overrides the prompt shown by observers.
func WithPrompt(p Prompt) Option {
	return func(n *Notifier) {
		n.prompt = p
	}
}

// New creates a Notifier that calls restarter on acknowledgment.
// A nil restarter turns acknowledgment into a plain reset.
func New(restarter Restarter, opts ...Option) *Notifier {
	n := &Notifier{
		restarter: restarter,
		logger:    slog.New(slog.DiscardHandler),
		prompt:    DefaultPrompt,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Register adds o to the registry. Registering the same observer twice
// keeps a single entry.
func (n *Notifier) Register(o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.indexOf(o) >= 0 {
		return
	}
	n.entries = append(n.entries, &registration{observer: o})
}

// Unregister removes o, disarming its hook.
func (n *Notifier) Unregister(o Observer) {
	n.mu.Lock()
	idx := n.indexOf(o)
	if idx < 0 {
		n.mu.Unlock()
		return
	}
	e := n.entries[idx]
	n.entries = slices.Delete(n.entries, idx, idx+1)
	n.mu.Unlock()

	e.release()
}

// NotifyAll shows the prompt on every observer and arms a fresh
// acknowledgment hook on each, replacing any previous one.
func (n *Notifier) NotifyAll() {
	n.mu.Lock()
	entries := slices.Clone(n.entries)
	prompt := n.prompt
	n.pending = true
	n.notified++
	n.mu.Unlock()

	for _, e := range entries {
		e.observer.Show(prompt)
		e.release()
		e.arm(n.acknowledge)
	}
}

// Cleanup disarms every hook and empties the registry.
func (n *Notifier) Cleanup() {
	n.mu.Lock()
	entries := n.entries
	n.entries = nil
	n.pending = false
	n.mu.Unlock()

	for _, e := range entries {
		e.release()
	}
}

// Pending reports whether a change is waiting for acknowledgment.
func (n *Notifier) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// acknowledge runs the restart and resets every observer.
// Restart failures are logged and never propagate.
func (n *Notifier) acknowledge() {
	if n.restarter != nil {
		if err := n.restarter.Restart(context.Background()); err != nil {
			n.logger.Error("restart failed", "error", err)
		}
	}

	n.mu.Lock()
	entries := slices.Clone(n.entries)
	n.pending = false
	n.restarts++
	n.mu.Unlock()

	for _, e := range entries {
		e.observer.Hide()
		e.release()
	}
}

func (n *Notifier) indexOf(o Observer) int {
	return slices.IndexFunc(n.entries, func(e *registration) bool { return e.observer == o })
}

func (r *registration) arm(ack func()) {
	disarm := r.observer.Arm(ack)
	r.mu.Lock()
	r.disarm = disarm
	r.mu.Unlock()
}

func (r *registration) release() {
	r.mu.Lock()
	disarm := r.disarm
	r.disarm = nil
	r.mu.Unlock()

	if disarm != nil {
		disarm()
	}
}

// NotifierState exposes internal state for observability.
type NotifierState struct {
	Observers int  `json:"observers"`
	Pending   bool `json:"pending"`
	Notified  int  `json:"notified"`
	Restarts  int  `json:"restarts"`
}

// State implements introspection.Introspectable.
func (n *Notifier) State() any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NotifierState{
		Observers: len(n.entries),
		Pending:   n.pending,
		Notified:  n.notified,
		Restarts:  n.restarts,
	}
}

// ComponentType implements introspection.Component.
func (n *Notifier) ComponentType() string {
	return "notifier"
}

var _ introspection.Introspectable = (*Notifier)(nil)
var _ introspection.Component = (*Notifier)(nil)
