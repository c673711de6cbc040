package phase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/wslkit/wslkit/internal/config"
	"github.com/wslkit/wslkit/internal/constants"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/run"
	"github.com/wslkit/wslkit/internal/state"
	"github.com/wslkit/wslkit/internal/wsl"
)

// windowsUserRoot is where Windows user profiles live.
const windowsUserRoot = "C:/Users"

// Phase2Controller performs the outer-environment half of the workflow
// natively on Windows: validate the handoff state, write .wslconfig under
// the Windows user's profile, and restart WSL.
//
// Unlike the Phase 1 trigger, the shutdown command here runs in an
// environment it does not destroy, so its failure is fatal.
type Phase2Controller struct {
	cfg      *config.Config
	runner   run.CommandRunner
	detector wsl.Detector
	store    state.Store
	logger   zerolog.Logger

	// userRoot is the profile directory root; overridable for tests.
	userRoot string

	// settle is the pause between the .wslconfig write and the shutdown.
	settle time.Duration
}

// NewPhase2Controller creates a Phase 2 controller from its collaborators.
func NewPhase2Controller(
	cfg *config.Config,
	runner run.CommandRunner,
	detector wsl.Detector,
	store state.Store,
	logger zerolog.Logger,
) *Phase2Controller {
	return &Phase2Controller{
		cfg:      cfg,
		runner:   runner,
		detector: detector,
		store:    store,
		logger:   logger.With().Int("phase", 2).Logger(),
		userRoot: windowsUserRoot,
		settle:   constants.ConfigSettleDelay,
	}
}

// Run executes Phase 2. It refuses to apply any configuration unless the
// loaded handoff state marks Phase 1 as completed.
func (c *Phase2Controller) Run(ctx context.Context) error {
	if c.detector.IsWSL() {
		return fmt.Errorf("phase 2 must run on Windows, not inside WSL: %w", wslkiterrors.ErrEnvironmentMismatch)
	}

	c.logger.Info().Msg("starting phase 2: Windows tasks")

	st, err := c.store.Load(ctx)
	if err != nil {
		// Absent and corrupted state carry distinct sentinels; both refuse
		// phase 2
		return fmt.Errorf("%w: %w", wslkiterrors.ErrPhaseIncomplete, err)
	}
	if !st.Phase1Completed {
		return fmt.Errorf("%w: state at %s does not mark phase 1 complete", wslkiterrors.ErrPhaseIncomplete, c.store.Path())
	}

	user := st.WindowsUser
	if user == "" {
		user = c.detector.WindowsUser(ctx)
	}
	if user == "" {
		return fmt.Errorf("windows user %w: cannot locate .wslconfig", wslkiterrors.ErrEmptyValue)
	}

	if err := c.writeWSLConfig(user); err != nil {
		return err
	}

	// Let the configuration write settle before tearing WSL down
	time.Sleep(c.settle)

	c.logger.Info().Msg("shutting down WSL")
	if err := c.runner.Run(ctx, "", "wsl", "--shutdown"); err != nil {
		return fmt.Errorf("failed to shut down WSL: %w", err)
	}

	c.logger.Info().Msg("phase 2 completed; WSL will use the new kernel on next startup")
	return nil
}

// writeWSLConfig writes the declarative WSL configuration naming the staged
// kernel image into the user's profile.
func (c *Phase2Controller) writeWSLConfig(user string) error {
	path := filepath.Join(c.userRoot, user, ".wslconfig")
	content := fmt.Sprintf("[wsl2]\nkernel=%s\n", c.cfg.Kernel.Dest)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //#nosec G306 -- WSL reads this as the user
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	c.logger.Info().Str("path", path).Str("kernel", c.cfg.Kernel.Dest).Msg("WSL config written")
	return nil
}
