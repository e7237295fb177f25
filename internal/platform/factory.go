package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/flickernaut/pkg/adapters/fs"
	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/launch"
	"github.com/aretw0/flickernaut/pkg/notify"
)

// Session is the explicitly owned handle to the settings core.
// Open acquires it; Close releases the watcher and the observer registry.
type Session struct {
	Settings core.Settings
	Store    *core.Store
	Notifier *notify.Notifier

	cancel context.CancelFunc
}

// Close stops the watcher (if any) and detaches every observer.
func (s *Session) Close() error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.Notifier != nil {
		s.Notifier.Cleanup()
	}
	return nil
}

// Open wires a Session for the settings file at path.
//
//	session, err := flickernaut.Open("~/.config/flickernaut/settings.yaml")
//
// Migration runs before the store is handed out.
func Open(path string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	readOnly, _ := o.config["read_only"].(bool)

	ctx, cancel := context.WithCancel(context.Background())

	// 1. Settings backend
	settings := o.settings
	if settings == nil {
		backend, err := openFS(ctx, path, o, logger)
		if err != nil {
			cancel()
			return nil, err
		}
		settings = backend
	}

	// 2. Schema migration
	if !readOnly {
		if err := core.Migrate(ctx, settings, logger); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to migrate settings: %w", err)
		}
	}

	// 3. Notifier
	restarter := o.restarter
	if restarter == nil {
		argv, _ := o.config["restart_command"].([]string)
		restarter = launch.NewCommandRestarter(argv, logger)
	}
	notifyOpts := []notify.Option{notify.WithLogger(logger)}
	if p, ok := o.config["prompt"].(notify.Prompt); ok {
		notifyOpts = append(notifyOpts, notify.WithPrompt(p))
	}
	notifier := notify.New(restarter, notifyOpts...)

	// 4. Store
	store := core.NewStore(core.StoreConfig{
		Settings: settings,
		Logger:   logger,
		Notifier: notifier,
		IDs:      o.ids,
	})

	return &Session{
		Settings: settings,
		Store:    store,
		Notifier: notifier,
		cancel:   cancel,
	}, nil
}

// openFS creates and initializes the YAML file backend.
func openFS(ctx context.Context, path string, o *options, logger *slog.Logger) (*fs.Backend, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	watch, _ := o.config["watch"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	resolved, err := ResolveSettingsPath(path)
	if err != nil {
		return nil, err
	}

	if !readOnly && !mustExist {
		if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	backend := fs.NewBackend(fs.Config{
		Path:         resolved,
		Logger:       logger,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		ErrorHandler: errorHandler,
	})
	if err := backend.Initialize(ctx); err != nil {
		return nil, err
	}
	logger.Debug("settings backend ready", "path", resolved, "read_only", readOnly)

	if watch {
		if err := backend.Watch(ctx); err != nil {
			return nil, fmt.Errorf("failed to watch settings: %w", err)
		}
	}
	return backend, nil
}
