// Package notify invokes the external synchronization hooks that follow
// user changes: case management receives the email, endpoint management
// the email plus the new enabled state.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Notifier is told about a user change after it has been applied.
type Notifier interface {
	Notify(ctx context.Context, email string, enabled bool) error
}

// Hook runs an external command when a user changes. The command is
// looked up on PATH per invocation; an absent command means the
// corresponding tool is not installed on this node and the notification
// is skipped.
type Hook struct {
	Command   string
	WithState bool // pass the enabled state as a second argument

	logger *slog.Logger
}

// NewHook creates a Hook for the named command.
func NewHook(command string, withState bool, logger *slog.Logger) *Hook {
	return &Hook{Command: command, WithState: withState, logger: logger}
}

// Notify runs the hook with the user's email and, when WithState is
// set, "true" or "false" for the enabled state.
func (h *Hook) Notify(ctx context.Context, email string, enabled bool) error {
	path, err := exec.LookPath(h.Command)
	if err != nil {
		h.logger.DebugContext(ctx, "notification hook not installed, skipping",
			"hook", h.Command)
		return nil
	}

	args := []string{email}
	if h.WithState {
		args = append(args, strconv.FormatBool(enabled))
	}

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("run %s hook: %w: %s", h.Command, err, msg)
		}
		return fmt.Errorf("run %s hook: %w", h.Command, err)
	}

	h.logger.DebugContext(ctx, "notification hook ran",
		"hook", h.Command, "email", email, "enabled", enabled)
	return nil
}

// Multi fans a notification out to several notifiers in order, stopping
// at the first failure.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, email string, enabled bool) error {
	for _, n := range m {
		if err := n.Notify(ctx, email, enabled); err != nil {
			return err
		}
	}
	return nil
}
