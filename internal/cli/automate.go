// Package cli provides the command-line interface for wslkit.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wslkit/wslkit/internal/clock"
	"github.com/wslkit/wslkit/internal/config"
	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/phase"
	"github.com/wslkit/wslkit/internal/run"
	"github.com/wslkit/wslkit/internal/state"
	"github.com/wslkit/wslkit/internal/tui"
	"github.com/wslkit/wslkit/internal/wsl"
)

// outputForCommand builds the user-facing output writer for a command.
func outputForCommand(cmd *cobra.Command, gf *GlobalFlags) tui.Output {
	return tui.NewOutput(cmd.OutOrStdout(), gf.Output)
}

// runAutomation is the root command's RunE: it wires the collaborators and
// dispatches on --cleanup and --phase.
func runAutomation(ctx context.Context, cmd *cobra.Command, gf *GlobalFlags, af *AutomationFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	runner := run.NewExecRunner(logger)
	detector := wsl.NewDetector(runner)

	cfg, err := config.LoadWithOverrides(ctx, overridesFromFlags(cmd, af))
	if err != nil {
		return err
	}

	// Each side of the restart boundary has its own state tree
	tempDir := cfg.Paths.WindowsTempDir
	if detector.IsWSL() {
		tempDir = cfg.Paths.LinuxTempDir
	}

	store, err := state.NewFileStore(tempDir)
	if err != nil {
		return err
	}

	if af.Cleanup {
		phase.Cleanup(ctx, store, logger)
		return nil
	}

	out := outputForCommand(cmd, gf)

	switch af.Phase {
	case "1":
		controller := phase.NewPhase1Controller(
			cfg,
			runner,
			detector,
			store,
			phase.NewPowerShellExecutor(runner),
			clock.RealClock{},
			logger,
		)

		r, err := controller.Run(ctx)
		if err != nil {
			return err
		}

		if gf.Output == OutputJSON {
			return out.JSON(r)
		}
		if r.Status == constants.RunStatusStateSaved {
			out.Warning("kernel built and staged; run phase 2 on Windows manually")
		} else {
			out.Success("kernel built, staged, and phase 2 triggered")
		}
		return nil

	case "2":
		controller := phase.NewPhase2Controller(cfg, runner, detector, store, logger)
		if err := controller.Run(ctx); err != nil {
			return err
		}
		out.Success("new kernel configured; WSL will use it on next start")
		return nil

	default:
		return fmt.Errorf("%w: %q (valid values: 1, 2)", errors.ErrInvalidPhase, af.Phase)
	}
}

// overridesFromFlags maps explicitly-set CLI flags to config overrides.
// cmd.Flags().Changed distinguishes a flag left at its default from one set
// to the default value on purpose.
func overridesFromFlags(cmd *cobra.Command, af *AutomationFlags) *config.Overrides {
	flags := cmd.Flags()
	return &config.Overrides{
		KernelRepo:   af.KernelRepo,
		KernelBranch: af.KernelBranch,
		KernelDest:   af.KernelDest,
		KernelDir:    af.KernelDir,
		NoClone:      af.NoClone,

		KernelRepoSet:   flags.Changed("kernel-repo"),
		KernelBranchSet: flags.Changed("kernel-branch"),
		KernelDestSet:   flags.Changed("kernel-dest"),
		KernelDirSet:    flags.Changed("kernel-dir"),
		NoCloneSet:      flags.Changed("no-clone"),
	}
}
