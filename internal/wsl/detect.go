// Package wsl provides environment detection for the two sides of the
// WSL restart boundary.
//
// Detection is fail-closed: if the environment cannot be read, the process
// is treated as NOT running inside WSL, so the destructive Phase 1 build
// path never runs somewhere it does not belong.
package wsl

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/wslkit/wslkit/internal/run"
)

// procVersionPath is the kernel version string exposed by the Linux kernel.
// Microsoft's WSL2 kernel embeds a vendor signature here.
const procVersionPath = "/proc/version"

// vendorSignature is the substring identifying a WSL kernel (matched
// case-insensitively).
const vendorSignature = "microsoft"

// Detector reports which side of the restart boundary the process runs on
// and identifies the Windows principal from inside WSL.
type Detector interface {
	// IsWSL reports whether the current process runs inside WSL2.
	IsWSL() bool

	// WindowsUser returns the Windows account name, or empty string if it
	// cannot be discovered. It never returns an error: absence of a
	// principal is a valid, handled state.
	WindowsUser(ctx context.Context) string
}

// ProcDetector implements Detector by inspecting /proc/version and, inside
// WSL, shelling out to the Windows command interpreter through the WSL
// interop bridge.
type ProcDetector struct {
	runner   run.CommandRunner
	procPath string
}

// NewDetector creates a ProcDetector using the given runner for the
// cmd.exe interop call.
func NewDetector(runner run.CommandRunner) *ProcDetector {
	return &ProcDetector{runner: runner, procPath: procVersionPath}
}

// NewDetectorWithProcPath creates a ProcDetector reading the kernel version
// from a custom path. Intended for tests.
func NewDetectorWithProcPath(runner run.CommandRunner, procPath string) *ProcDetector {
	return &ProcDetector{runner: runner, procPath: procPath}
}

// IsWSL reports whether the process runs inside WSL2. Any read failure is
// treated as "not WSL".
func (d *ProcDetector) IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile(d.procPath)
	if err != nil {
		return false
	}

	return strings.Contains(strings.ToLower(string(data)), vendorSignature)
}

// WindowsUser returns the Windows account name.
//
// Inside WSL the interop bridge lets Linux processes start Windows
// executables, so the name is read from cmd.exe's USERNAME variable.
// Outside WSL (native Windows) the local environment variable is used
// directly. Both paths degrade to empty string on failure.
func (d *ProcDetector) WindowsUser(ctx context.Context) string {
	if d.IsWSL() {
		out, err := d.runner.Output(ctx, "", "cmd.exe", "/c", "echo %USERNAME%")
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return os.Getenv("USERNAME")
}

// Ensure ProcDetector implements Detector.
var _ Detector = (*ProcDetector)(nil)
