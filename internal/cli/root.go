// Package cli provides the command-line interface for wslkit.
package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/run"
	"github.com/wslkit/wslkit/internal/tui"
	"github.com/wslkit/wslkit/internal/wsl"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the wslkit CLI.
// This function-based approach avoids package-level globals, making the
// code more testable.
func newRootCmd(flags *GlobalFlags, autoFlags *AutomationFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "wslkit",
		Short: "wslkit - custom WSL2 kernel build and install automation",
		Long: `wslkit builds a custom WSL2 Linux kernel inside WSL, stages the image onto
the Windows filesystem, rewrites .wslconfig, and restarts WSL so the new
kernel takes effect.

The workflow is split in two phases at the restart boundary:
  • Phase 1 (inside WSL): clone, build, stage the kernel, persist handoff
    state, and trigger Phase 2 on Windows
  • Phase 2 (on Windows): validate the handoff state, write .wslconfig,
    and shut WSL down

Phase 1 normally triggers Phase 2 automatically; the trigger call is
expected to be interrupted by the WSL shutdown it causes.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAutomation(cmd.Context(), cmd, flags, autoFlags)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Bind flags to Viper
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			// Read the effective values back so WSLKIT_OUTPUT and friends
			// apply when the flag itself was not given
			flags.Output = v.GetString("output")
			flags.Verbose = v.GetBool("verbose")
			flags.Quiet = v.GetBool("quiet")

			// Validate output format
			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			tui.CheckNoColor()

			// The logger tags events with the boundary side; IsWSL needs no
			// runner, so a no-op logger suffices for this one probe
			isWSL := wsl.NewDetector(run.NewExecRunner(zerolog.Nop())).IsWSL()

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet, isWSL)
			globalLoggerMu.Unlock()

			return nil
		},
		// We print our own error messages with remediation hints
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	AddAutomationFlags(cmd, autoFlags)

	AddInitCommand(cmd, flags)
	AddStatusCommand(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are reported to stderr with a remediation hint when one is known.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	autoFlags := &AutomationFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, autoFlags, info)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		out := tui.NewOutput(os.Stderr, flags.Output)
		out.Error(err)
		if action := errors.Actionable(err); action != "" {
			out.Info("hint: " + action)
		}
	}

	CloseLogFile()
	return err
}
