// Package executor performs action payloads: keys and text through a key
// emitter, commands and system actions through a shell.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

// ErrUnsupportedAction is returned for payloads the router cannot perform.
var ErrUnsupportedAction = errors.New("unsupported action")

// maxOutput bounds captured command output in errors.
const maxOutput = 512

const waitDelay = time.Second

// Config configures a Router.
type Config struct {
	Shell          string
	CommandTimeout time.Duration
	// SystemCommands maps system action ids to shell commands.
	SystemCommands map[string]string
}

// Router implements port.ActionExecutor by payload kind.
type Router struct {
	keys port.KeyEmitter
	cfg  Config
}

var _ port.ActionExecutor = (*Router)(nil)

// NewRouter creates a router. keys may be nil when no virtual keyboard is
// available; key and text actions then fail with ErrUnsupportedAction.
func NewRouter(keys port.KeyEmitter, cfg Config) *Router {
	if cfg.Shell == "" {
		cfg.Shell = "/bin/sh"
	}
	return &Router{keys: keys, cfg: cfg}
}

// Execute implements port.ActionExecutor. metaState is combined with the
// payload's own modifiers for key actions.
func (r *Router) Execute(ctx context.Context, payload entity.ActionPayload, eventType entity.KeyEventType, metaState int) error {
	switch payload.Kind {
	case entity.ActionKindKey:
		if r.keys == nil {
			return fmt.Errorf("%w: no virtual keyboard for key actions", ErrUnsupportedAction)
		}
		return r.keys.EmitKey(ctx, payload.KeyCode, payload.MetaState|metaState, eventType)
	case entity.ActionKindText:
		if r.keys == nil {
			return fmt.Errorf("%w: no virtual keyboard for text actions", ErrUnsupportedAction)
		}
		// Text is typed once, on press.
		if eventType == entity.KeyEventUp {
			return nil
		}
		return r.keys.TypeText(ctx, payload.Text)
	case entity.ActionKindCommand:
		if eventType == entity.KeyEventUp {
			return nil
		}
		return r.runCommand(ctx, payload.Command, payload.Args)
	case entity.ActionKindSystem:
		if eventType == entity.KeyEventUp {
			return nil
		}
		cmd, ok := r.cfg.SystemCommands[payload.SystemID]
		if !ok {
			return fmt.Errorf("%w: system action %q", ErrUnsupportedAction, payload.SystemID)
		}
		return r.runCommand(ctx, cmd, nil)
	default:
		return fmt.Errorf("%w: kind %q", ErrUnsupportedAction, payload.Kind)
	}
}

// runCommand runs name with args directly, or through the shell when args
// is empty.
func (r *Router) runCommand(ctx context.Context, command string, args []string) error {
	log := logging.FromContext(ctx)

	if r.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CommandTimeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	if len(args) > 0 {
		cmd = exec.CommandContext(ctx, command, args...)
	} else {
		cmd = exec.CommandContext(ctx, r.cfg.Shell, "-c", command)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	// Children that inherit the output pipe must not outlive the timeout.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	log.Debug().
		Str("command", command).
		Strs("args", args).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("command finished")
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("command %q: %w", command, ctx.Err())
		}
		return fmt.Errorf("command %q: %w: %s", command, err, truncate(strings.TrimSpace(out.String()), maxOutput))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
