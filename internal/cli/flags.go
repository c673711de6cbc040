// Package cli provides the command-line interface for wslkit.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wslkit/wslkit/internal/constants"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a fatal error from phase execution or an invalid
	// phase selector.
	ExitError = 1
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AutomationFlags holds the flags that select and parameterize the phase
// dispatch on the root command. They are copied into config overrides once
// at startup; no controller reads them directly.
type AutomationFlags struct {
	// Phase selects which half of the workflow to run ("1" or "2").
	Phase string
	// Cleanup runs the cleanup operation and exits, bypassing phase dispatch.
	Cleanup bool
	// KernelRepo overrides the kernel repository URL.
	KernelRepo string
	// KernelBranch overrides the branch to shallow-clone.
	KernelBranch string
	// KernelDest overrides the artifact destination on the Windows filesystem.
	KernelDest string
	// KernelDir overrides the local source directory name.
	KernelDir string
	// NoClone disables auto-clone; the source directory must pre-exist.
	NoClone bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// AddAutomationFlags adds the phase-dispatch flags to the root command.
func AddAutomationFlags(cmd *cobra.Command, flags *AutomationFlags) {
	cmd.Flags().StringVar(&flags.Phase, "phase", "1", "which phase to run (1 or 2)")
	cmd.Flags().BoolVar(&flags.Cleanup, "cleanup", false, "clean up temporary state and exit")
	cmd.Flags().StringVar(&flags.KernelRepo, "kernel-repo", constants.DefaultKernelRepo, "kernel repository URL")
	cmd.Flags().StringVar(&flags.KernelBranch, "kernel-branch", constants.DefaultKernelBranch, "kernel branch to build")
	cmd.Flags().StringVar(&flags.KernelDest, "kernel-dest", constants.DefaultKernelDest, "destination for the kernel image")
	cmd.Flags().StringVar(&flags.KernelDir, "kernel-dir", constants.DefaultKernelDir, "local kernel directory name")
	cmd.Flags().BoolVar(&flags.NoClone, "no-clone", false, "don't auto-clone the repository")
}

// BindGlobalFlags binds global flags to Viper for configuration file and
// environment variable support. The WSLKIT_ prefix is used for environment
// variables (e.g., WSLKIT_OUTPUT, WSLKIT_VERBOSE).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	if err := v.BindPFlag("output", rootFlags.Lookup("output")); err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", rootFlags.Lookup("verbose")); err != nil {
		return err
	}
	if err := v.BindPFlag("quiet", rootFlags.Lookup("quiet")); err != nil {
		return err
	}

	v.SetEnvPrefix("WSLKIT")
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for the given error.
// The CLI contract is binary: 0 on success, 1 on any fatal error, including
// an invalid phase selector.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitError
}
