package phase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/wslkit/wslkit/internal/clock"
	"github.com/wslkit/wslkit/internal/config"
	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/domain"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/run"
	"github.com/wslkit/wslkit/internal/state"
	"github.com/wslkit/wslkit/internal/wsl"
)

// buildDependencies are the apt packages required to build the WSL2 kernel.
//
//nolint:gochecknoglobals // Read-only package list
var buildDependencies = []string{
	"build-essential", "flex", "bison", "libssl-dev",
	"libelf-dev", "bc", "python3", "pahole", "cpio",
}

// Phase1Controller orchestrates the inner-environment half of the workflow:
// source acquisition, dependency install, kernel build, artifact staging,
// state persistence, script generation, and the trigger call that hands off
// to Windows.
//
// Step ordering is the protocol's core correctness property: the handoff
// state is marked complete only after the kernel image physically exists at
// the destination Windows will read from, and the state is durably written
// before the trigger call that can destroy this process.
type Phase1Controller struct {
	cfg      *config.Config
	runner   run.CommandRunner
	detector wsl.Detector
	store    state.Store
	outer    OuterExecutor
	clk      clock.Clock
	logger   zerolog.Logger
}

// NewPhase1Controller creates a Phase 1 controller from its collaborators.
func NewPhase1Controller(
	cfg *config.Config,
	runner run.CommandRunner,
	detector wsl.Detector,
	store state.Store,
	outer OuterExecutor,
	clk clock.Clock,
	logger zerolog.Logger,
) *Phase1Controller {
	return &Phase1Controller{
		cfg:      cfg,
		runner:   runner,
		detector: detector,
		store:    store,
		outer:    outer,
		clk:      clk,
		logger:   logger.With().Int("phase", 1).Logger(),
	}
}

// Run executes Phase 1. On success the returned run ends in the Triggered
// status, or in StateSaved when no Windows user could be discovered and
// script generation was skipped. Any step failure aborts the run; no step
// is retried automatically.
func (c *Phase1Controller) Run(ctx context.Context) (*domain.Run, error) {
	// Environment precondition, checked before anything touches the filesystem
	if !c.detector.IsWSL() {
		return nil, fmt.Errorf("phase 1 must run inside WSL2: %w", wslkiterrors.ErrEnvironmentMismatch)
	}

	r := NewRun(1, c.clk)
	c.logger.Info().Str("run_id", r.ID).Msg("starting phase 1: WSL2 tasks")

	// Discover the Windows principal up front; absence is handled, not fatal
	windowsUser := c.detector.WindowsUser(ctx)
	if windowsUser == "" {
		c.logger.Warn().Msg("cannot determine Windows user; phase 2 script generation will be skipped")
	}

	if err := c.ensureSource(ctx, r); err != nil {
		return r, err
	}
	if err := c.installDependencies(ctx, r); err != nil {
		return r, err
	}
	if err := c.build(ctx, r); err != nil {
		return r, err
	}
	if err := c.stageArtifact(ctx, r); err != nil {
		return r, err
	}
	if err := c.saveState(ctx, r, windowsUser); err != nil {
		return r, err
	}

	c.logger.Info().Msg("phase 1 completed; all durable handoff state committed")

	if windowsUser == "" {
		// No script, no trigger; phase 2 can still be invoked manually on
		// Windows against the saved state
		return r, nil
	}

	if err := c.generateScript(ctx, r, windowsUser); err != nil {
		return r, err
	}
	c.trigger(ctx, r)

	return r, nil
}

// ensureSource makes the kernel source tree available: cloned when absent
// and auto-clone is enabled, reused unconditionally when present.
func (c *Phase1Controller) ensureSource(ctx context.Context, r *domain.Run) error {
	dir := c.cfg.Kernel.Dir

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if !c.cfg.Kernel.AutoClone {
			c.logger.Error().Str("dir", dir).Msg("kernel directory not found and auto-clone disabled")
			return c.fail(ctx, r, "source acquisition",
				fmt.Errorf("%w: %s (clone it manually or enable auto-clone)", wslkiterrors.ErrSourceNotFound, dir))
		}

		c.logger.Info().
			Str("repo", c.cfg.Kernel.Repo).
			Str("branch", c.cfg.Kernel.Branch).
			Msg("cloning kernel repository")
		err := c.runner.Run(ctx, "", "git", "clone",
			c.cfg.Kernel.Repo, dir, "--depth=1", "-b", c.cfg.Kernel.Branch)
		if err != nil {
			return c.fail(ctx, r, "source acquisition", err)
		}
	} else {
		// An existing tree is reused as-is, with no fetch
		c.logger.Info().Str("dir", dir).Msg("using existing kernel directory")
	}

	return Transition(ctx, r, c.clk, constants.RunStatusSourceReady, "")
}

// installDependencies installs the kernel build toolchain via apt.
func (c *Phase1Controller) installDependencies(ctx context.Context, r *domain.Run) error {
	c.logger.Info().Msg("installing build dependencies")

	if err := c.runner.Run(ctx, "", "sudo", "apt", "update"); err != nil {
		return c.fail(ctx, r, "dependency installation", err)
	}

	args := append([]string{"apt", "install", "-y"}, buildDependencies...)
	if err := c.runner.Run(ctx, "", "sudo", args...); err != nil {
		return c.fail(ctx, r, "dependency installation", err)
	}

	return Transition(ctx, r, c.clk, constants.RunStatusDepsInstalled, "")
}

// build runs the kernel build and installs modules and headers.
func (c *Phase1Controller) build(ctx context.Context, r *domain.Run) error {
	buildCtx := ctx
	if c.cfg.Build.Timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, c.cfg.Build.Timeout)
		defer cancel()
	}

	jobs := strconv.Itoa(c.cfg.Build.FallbackJobs)
	if out, err := c.runner.Output(ctx, "", "nproc"); err == nil && out != "" {
		jobs = out
	} else {
		c.logger.Warn().Str("fallback", jobs).Msg("could not query processor count")
	}

	c.logger.Info().Str("jobs", jobs).Msg("building kernel")
	err := c.runner.Run(buildCtx, c.cfg.Kernel.Dir, "make",
		"-j"+jobs, "KCONFIG_CONFIG="+c.cfg.Build.KConfig)
	if err != nil {
		return c.fail(ctx, r, "kernel build", err)
	}

	c.logger.Info().Msg("installing kernel modules and headers")
	err = c.runner.Run(buildCtx, c.cfg.Kernel.Dir, "sudo", "make", "modules_install", "headers_install")
	if err != nil {
		return c.fail(ctx, r, "module installation", err)
	}

	return Transition(ctx, r, c.clk, constants.RunStatusBuilt, "")
}

// stageArtifact verifies the build output exists and copies it to the
// Windows destination. A missing image and a failed copy are distinct
// failures: the first means the build silently produced nothing.
func (c *Phase1Controller) stageArtifact(ctx context.Context, r *domain.Run) error {
	imagePath := filepath.Join(c.cfg.Kernel.Dir, constants.KernelImageRelPath)

	if _, err := os.Stat(imagePath); err != nil {
		return c.fail(ctx, r, "artifact staging",
			fmt.Errorf("%w: expected %s", wslkiterrors.ErrArtifactMissing, imagePath))
	}

	if err := c.runner.Run(ctx, "", "cp", imagePath, c.cfg.Kernel.Dest); err != nil {
		return c.fail(ctx, r, "artifact staging", err)
	}

	c.logger.Info().Str("dest", c.cfg.Kernel.Dest).Msg("kernel image staged")
	return Transition(ctx, r, c.clk, constants.RunStatusArtifactStaged, "")
}

// saveState durably writes the handoff record. This happens strictly after
// staging: phase1_completed must never be true while the artifact is absent.
func (c *Phase1Controller) saveState(ctx context.Context, r *domain.Run, windowsUser string) error {
	st := &domain.HandoffState{
		RunID:           r.ID,
		Phase1Completed: true,
		KernelBuilt:     true,
		WindowsUser:     windowsUser,
		CreatedAt:       c.clk.Now().Unix(),
		SchemaVersion:   constants.StateSchemaVersion,
	}

	if err := c.store.Save(ctx, st); err != nil {
		return c.fail(ctx, r, "state persistence", err)
	}

	c.logger.Info().Str("path", c.store.Path()).Msg("handoff state saved")
	return Transition(ctx, r, c.clk, constants.RunStatusStateSaved, "")
}

// generateScript writes the Phase 2 script onto the Windows filesystem.
func (c *Phase1Controller) generateScript(ctx context.Context, r *domain.Run, windowsUser string) error {
	winPath := WindowsScriptPath(c.cfg.Paths.WindowsTempDir)
	path, err := WritePhase2Script(c.cfg.Paths.WindowsTempDirMount, windowsUser, c.cfg.Kernel.Dest, winPath)
	if err != nil {
		return c.fail(ctx, r, "script generation", err)
	}

	c.logger.Info().Str("path", path).Msg("phase 2 script created on Windows")
	return Transition(ctx, r, c.clk, constants.RunStatusScriptGenerated, "")
}

// trigger invokes the Phase 2 script on Windows. The call is expected to be
// interrupted by the WSL shutdown it causes; by this point all durable state
// needed for Phase 2 is committed, so no outcome fails the run.
func (c *Phase1Controller) trigger(ctx context.Context, r *domain.Run) {
	winPath := WindowsScriptPath(c.cfg.Paths.WindowsTempDir)
	c.logger.Info().Str("script", winPath).Msg("triggering phase 2 on Windows")

	outcome, err := c.outer.ExecuteScript(ctx, winPath)
	switch outcome {
	case TriggerSucceeded:
		c.logger.Info().Msg("phase 2 completed before WSL teardown")
	case TriggerInterrupted:
		c.logger.Info().Msg("phase 2 triggered (WSL shutdown expected)")
	case TriggerFailed:
		c.logger.Warn().Err(err).Msg("phase 2 trigger failed; run it manually on Windows with --phase 2")
	}

	_ = Transition(ctx, r, c.clk, constants.RunStatusTriggered, outcome.String())
}

// fail records the failed step on the run and returns the wrapped error.
func (c *Phase1Controller) fail(ctx context.Context, r *domain.Run, step string, err error) error {
	_ = Transition(ctx, r, c.clk, constants.RunStatusFailed, step+": "+err.Error())
	return fmt.Errorf("%s failed: %w", step, err)
}
