// Package run provides external command execution for wslkit.
//
// Every external tool the automation touches (git, apt, make, cp, cmd.exe,
// powershell.exe, wsl) goes through the CommandRunner interface so that
// logging and error wrapping stay uniform, and so controllers can be tested
// against fake runners. No retries are performed here: external-command
// failures propagate immediately, and retry policy belongs to the caller.
package run

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
)

// CommandRunner defines the interface for executing external commands.
// This allows for testing by injecting mock implementations.
type CommandRunner interface {
	// Run executes a command in dir (empty means the current directory),
	// streaming stdout/stderr to the calling process's own streams.
	// Returns a wrapped error on non-zero exit or launch failure.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes a command in dir and returns its trimmed stdout.
	// Stderr is captured and included in the error on failure.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner creates an ExecRunner that logs each invocation at debug level.
func NewExecRunner(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// Run executes a command, streaming its output to the process streams.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("dir", dir).
		Msg("running command")

	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %w", wslkiterrors.ErrCommandFailed, name, strings.Join(args, " "), err)
	}
	return nil
}

// Output executes a command and returns its trimmed standard output.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("dir", dir).
		Msg("running command (captured)")

	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%w: %s: %s: %w", wslkiterrors.ErrCommandFailed, name, strings.TrimSpace(stderr.String()), err)
		}
		return "", fmt.Errorf("%w: %s: %w", wslkiterrors.ErrCommandFailed, name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Ensure ExecRunner implements CommandRunner.
var _ CommandRunner = (*ExecRunner)(nil)
