package flickernaut

import (
	"log/slog"

	"github.com/aretw0/flickernaut/internal/platform"
	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/notify"
)

// --- Types ---

// Session is the handle returned by Open.
type Session = platform.Session

// Record is a single configured editor or application.
type Record = core.Record

// --- Configuration ---

// Option defines a functional option for configuring a Session.
type Option = platform.Option

// WithLogger sets the logger for every component of the session.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSettings allows injecting a custom settings backend.
func WithSettings(settings core.Settings) Option {
	return platform.WithSettings(settings)
}

// WithRestarter overrides the action taken when a pending change is acknowledged.
func WithRestarter(r notify.Restarter) Option {
	return platform.WithRestarter(r)
}

// WithRestartCommand sets the command that restarts the file manager.
func WithRestartCommand(argv ...string) Option {
	return platform.WithRestartCommand(argv...)
}

// WithIDGenerator selects how new record ids are produced.
func WithIDGenerator(ids core.IDGenerator) Option {
	return platform.WithIDGenerator(ids)
}

// WithPrompt overrides the restart prompt shown by observers.
func WithPrompt(p notify.Prompt) Option {
	return platform.WithPrompt(p)
}

// WithMustExist ensures the settings file must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the settings without ever writing them.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithWatch reacts to edits made by other processes.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithWatcherErrorHandler receives runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open creates a Session over the settings file at path.
// An empty path uses DefaultSettingsPath.
func Open(path string, opts ...Option) (*Session, error) {
	return platform.Open(path, opts...)
}

// --- Utils ---

// DefaultSettingsPath returns the per-user settings file location.
func DefaultSettingsPath() (string, error) {
	return platform.DefaultSettingsPath()
}

// ResolveSettingsPath expands ~ and directories into a settings file path.
func ResolveSettingsPath(path string) (string, error) {
	return platform.ResolveSettingsPath(path)
}
