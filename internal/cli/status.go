// Package cli provides the command-line interface for wslkit.
package cli

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wslkit/wslkit/internal/config"
	"github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/run"
	"github.com/wslkit/wslkit/internal/state"
	"github.com/wslkit/wslkit/internal/wsl"
)

// AddStatusCommand adds the status command to the root command.
// It inspects the handoff state on the current side of the boundary without
// modifying anything.
func AddStatusCommand(rootCmd *cobra.Command, gf *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted handoff state, if any",
		Long: `Status reads the handoff state file for the current environment and
reports where the workflow stands. Inside WSL it reads the Linux-side copy;
on Windows it reads the staged copy that Phase 2 consumes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, gf)
		},
	}

	rootCmd.AddCommand(cmd)
}

// runStatus loads and prints the handoff state.
func runStatus(cmd *cobra.Command, gf *GlobalFlags) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())

	out := outputForCommand(cmd, gf)

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	detector := wsl.NewDetector(run.NewExecRunner(logger))
	tempDir := cfg.Paths.WindowsTempDir
	if detector.IsWSL() {
		tempDir = cfg.Paths.LinuxTempDir
	}

	store, err := state.NewFileStore(tempDir)
	if err != nil {
		return err
	}

	st, err := store.Load(ctx)
	if err != nil {
		if stderrors.Is(err, errors.ErrStateNotFound) {
			out.Warning("no handoff state found; no run in progress")
			return nil
		}
		return err
	}

	if gf.Output == OutputJSON {
		return out.JSON(st)
	}

	created := time.Unix(st.CreatedAt, 0)
	out.Info(fmt.Sprintf("run:              %s", st.RunID))
	out.Info(fmt.Sprintf("phase 1 complete: %t", st.Phase1Completed))
	out.Info(fmt.Sprintf("kernel built:     %t", st.KernelBuilt))
	if st.WindowsUser != "" {
		out.Info(fmt.Sprintf("windows user:     %s", st.WindowsUser))
	} else {
		out.Warning("windows user:     (not discovered)")
	}
	out.Info(fmt.Sprintf("created:          %s (%s ago)",
		created.Format(time.RFC3339), time.Since(created).Round(time.Second)))
	out.Info(fmt.Sprintf("state file:       %s", store.Path()))

	if st.Phase1Completed {
		out.Success("ready for phase 2")
	}

	return nil
}
