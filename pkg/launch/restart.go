package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// DefaultRestartCommand quits Nautilus; the desktop starts it again on demand.
var DefaultRestartCommand = []string{"nautilus", "-q"}

// CommandRestarter runs a command without waiting for it to finish.
type CommandRestarter struct {
	Command []string
	Logger  *slog.Logger
}

// NewCommandRestarter creates a restarter for command, or the default one when empty.
func NewCommandRestarter(command []string, logger *slog.Logger) *CommandRestarter {
	if len(command) == 0 {
		command = DefaultRestartCommand
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandRestarter{Command: command, Logger: logger}
}

// Restart starts the command and reaps it in the background.
// Only start failures are reported.
func (r *CommandRestarter) Restart(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return spawn(r.Command, r.Logger)
}

// Start runs inv detached, the way the menu does when an entry is clicked.
func Start(inv Invocation, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return spawn(inv.Argv, logger)
}

func spawn(argv []string, logger *slog.Logger) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %q: %w", argv[0], err)
	}
	logger.Debug("command started", "argv", argv, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("command exited", "argv", argv, "error", err)
		}
	}()
	return nil
}
