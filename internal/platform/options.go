package platform

import (
	"log/slog"

	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/notify"
)

// options holds the internal configuration of a Session.
type options struct {
	settings  core.Settings
	logger    *slog.Logger
	restarter notify.Restarter
	ids       core.IDGenerator
	config    map[string]interface{}
}

// Option defines a functional option for configuring a Session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]interface{}),
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSettings injects a settings backend (e.g. memory.Backend).
// If provided, the YAML file backend is skipped and the path is ignored.
func WithSettings(settings core.Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// WithRestarter overrides what happens when a user acknowledges a pending change.
func WithRestarter(r notify.Restarter) Option {
	return func(o *options) {
		o.restarter = r
	}
}

// WithRestartCommand sets the command run on acknowledgment.
// Defaults to "nautilus -q".
func WithRestartCommand(argv ...string) Option {
	return func(o *options) {
		o.config["restart_command"] = argv
	}
}

// WithIDGenerator selects how new record ids are produced.
// Defaults to random 12 character ids.
func WithIDGenerator(ids core.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithPrompt overrides the text observers show while a change is pending.
func WithPrompt(p notify.Prompt) Option {
	return func(o *options) {
		o.config["prompt"] = p
	}
}

// WithMustExist fails Open when the settings file does not exist yet.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly opens the settings file without ever writing it.
// Migration is skipped and every write returns core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithWatch starts a watcher on the settings file so changes made by
// other processes reach subscribers.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.config["watch"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
