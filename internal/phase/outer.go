package phase

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"

	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/run"
)

// TriggerOutcome classifies the result of the Phase 1 → Phase 2 trigger call.
//
// The trigger is unusual: its own effect (the WSL shutdown) tears down the
// environment the caller runs in, so a failure of this one call is often the
// expected sign of success. The outcome is therefore a tri-state rather than
// a bare error, and only the interrupted case suppresses escalation.
type TriggerOutcome int

const (
	// TriggerSucceeded means the script ran to completion and the call
	// returned cleanly (possible when the shutdown races slowly).
	TriggerSucceeded TriggerOutcome = iota

	// TriggerInterrupted means the script started but the call died
	// mid-flight, consistent with the WSL teardown it causes. Expected.
	TriggerInterrupted

	// TriggerFailed means the script could not be started at all. This is a
	// genuine failure, not the expected self-destruction.
	TriggerFailed
)

// String returns a human-readable name for the outcome.
func (o TriggerOutcome) String() string {
	switch o {
	case TriggerSucceeded:
		return "succeeded"
	case TriggerInterrupted:
		return "interrupted"
	case TriggerFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OuterExecutor is the narrow facility Phase 1 depends on to run a script on
// the Windows side. The inner controller only knows this one method, which
// keeps the cross-boundary execution mechanism fakeable in tests.
type OuterExecutor interface {
	// ExecuteScript runs the script at the given Windows path and classifies
	// the result. The returned error is non-nil for both Interrupted and
	// Failed outcomes; the outcome decides whether it escalates.
	ExecuteScript(ctx context.Context, scriptPath string) (TriggerOutcome, error)
}

// PowerShellExecutor implements OuterExecutor through the WSL interop
// bridge, which lets Linux processes start Windows executables.
type PowerShellExecutor struct {
	runner run.CommandRunner
}

// NewPowerShellExecutor creates a PowerShellExecutor using the given runner.
func NewPowerShellExecutor(runner run.CommandRunner) *PowerShellExecutor {
	return &PowerShellExecutor{runner: runner}
}

// ExecuteScript runs the Phase 2 script via powershell.exe.
//
// An exit-style error means powershell started and then the call died or the
// script reported failure while WSL was being torn down underneath us: that
// is classified as the expected interrupt. Anything else (interop bridge
// unavailable, powershell.exe not found) is a real failure.
func (e *PowerShellExecutor) ExecuteScript(ctx context.Context, scriptPath string) (TriggerOutcome, error) {
	err := e.runner.Run(ctx, "", "powershell.exe", "-ExecutionPolicy", "Bypass", "-File", scriptPath)
	if err == nil {
		return TriggerSucceeded, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return TriggerInterrupted, err
	}

	return TriggerFailed, fmt.Errorf("%w: %w", wslkiterrors.ErrTriggerFailed, err)
}

// Ensure PowerShellExecutor implements OuterExecutor.
var _ OuterExecutor = (*PowerShellExecutor)(nil)
