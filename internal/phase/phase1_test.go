package phase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslkit/wslkit/internal/config"
	"github.com/wslkit/wslkit/internal/constants"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
	"github.com/wslkit/wslkit/internal/state"
)

// phase1Fixture wires a Phase 1 controller against fakes and temp
// directories standing in for both sides of the boundary.
type phase1Fixture struct {
	cfg      *config.Config
	runner   *fakeRunner
	detector *fakeDetector
	store    *state.FileStore
	outer    *fakeOuter
	stateDir string
}

func newPhase1Fixture(t *testing.T) *phase1Fixture {
	t.Helper()

	root := t.TempDir()
	stateDir := filepath.Join(root, "wsl2_automation")
	mountDir := filepath.Join(root, "mnt", "wsl2_automation")

	cfg := config.DefaultConfig()
	cfg.Kernel.Dir = filepath.Join(root, "WSL2-Linux-Kernel")
	cfg.Kernel.Dest = filepath.Join(root, "bzImage-staged")
	cfg.Paths.LinuxTempDir = stateDir
	cfg.Paths.WindowsTempDirMount = mountDir

	store, err := state.NewFileStore(stateDir)
	require.NoError(t, err)

	runner := newFakeRunner()
	runner.outputs["nproc"] = "8"

	return &phase1Fixture{
		cfg:      cfg,
		runner:   runner,
		detector: &fakeDetector{isWSL: true, user: "alice"},
		store:    store,
		outer:    &fakeOuter{outcome: TriggerInterrupted, err: errors.New("signal: killed")},
		stateDir: stateDir,
	}
}

// seedKernelSource creates the source tree with a built image in place.
func (f *phase1Fixture) seedKernelSource(t *testing.T) {
	t.Helper()
	imagePath := filepath.Join(f.cfg.Kernel.Dir, constants.KernelImageRelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(imagePath), 0o755))
	require.NoError(t, os.WriteFile(imagePath, []byte("bzImage"), 0o644))
}

func (f *phase1Fixture) controller() *Phase1Controller {
	return NewPhase1Controller(f.cfg, f.runner, f.detector, f.store, f.outer, testClock(), zerolog.Nop())
}

func TestPhase1Controller_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("full run ends triggered with durable state", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)

		r, err := f.controller().Run(ctx)

		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, constants.RunStatusTriggered, r.Status)

		// The handoff record is committed and marks completion
		st, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, r.ID, st.RunID)
		assert.True(t, st.Phase1Completed)
		assert.True(t, st.KernelBuilt)
		assert.Equal(t, "alice", st.WindowsUser)
		assert.Equal(t, constants.StateSchemaVersion, st.SchemaVersion)

		// The phase 2 script landed on the Windows side
		scriptPath := filepath.Join(f.cfg.Paths.WindowsTempDirMount, constants.Phase2ScriptName)
		script, err := os.ReadFile(scriptPath)
		require.NoError(t, err)
		assert.Contains(t, string(script), "alice")

		// Steps ran in order: deps, build, install, stage, trigger
		assert.True(t, f.runner.sawCommand("sudo apt update"))
		assert.True(t, f.runner.sawCommand("sudo apt install -y build-essential"))
		assert.True(t, f.runner.sawCommand("make -j8 KCONFIG_CONFIG="+f.cfg.Build.KConfig))
		assert.True(t, f.runner.sawCommand("sudo make modules_install headers_install"))
		assert.True(t, f.runner.sawCommand("cp "))
		assert.Equal(t, 1, f.outer.calls)
	})

	t.Run("refuses to run outside WSL before touching anything", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.detector.isWSL = false

		r, err := f.controller().Run(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, wslkiterrors.ErrEnvironmentMismatch)
		assert.Nil(t, r)
		assert.Empty(t, f.runner.calls)
		_, statErr := os.Stat(f.stateDir)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("clones when source is absent", func(t *testing.T) {
		f := newPhase1Fixture(t)
		// Let the fake clone create the tree and the fake make produce the
		// image, mirroring what the real commands do
		imagePath := filepath.Join(f.cfg.Kernel.Dir, constants.KernelImageRelPath)
		f.runner.onRun = func(line string) {
			switch {
			case strings.Contains(line, "git clone"):
				require.NoError(t, os.MkdirAll(filepath.Dir(imagePath), 0o755))
			case strings.Contains(line, "make -j"):
				require.NoError(t, os.WriteFile(imagePath, []byte("bzImage"), 0o644))
			}
		}

		r, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, constants.RunStatusTriggered, r.Status)
		assert.True(t, f.runner.sawCommand(
			"git clone "+f.cfg.Kernel.Repo+" "+f.cfg.Kernel.Dir+" --depth=1 -b "+f.cfg.Kernel.Branch))
	})

	t.Run("reuses existing source without cloning", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)

		_, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.False(t, f.runner.sawCommand("git clone"))
	})

	t.Run("missing source with auto-clone disabled fails before any install", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.cfg.Kernel.AutoClone = false

		r, err := f.controller().Run(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, wslkiterrors.ErrSourceNotFound)
		assert.Equal(t, constants.RunStatusFailed, r.Status)
		assert.False(t, f.runner.sawCommand("apt"))
		assert.False(t, f.runner.sawCommand("git clone"))
	})

	t.Run("build failure aborts the run", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		f.runner.failOn["make -j"] = errors.New("make: *** [vmlinux] Error 2")

		r, err := f.controller().Run(ctx)

		require.Error(t, err)
		assert.Equal(t, constants.RunStatusFailed, r.Status)
		assert.False(t, f.runner.sawCommand("cp "))

		// No state was committed, so phase 2 will refuse to run
		_, loadErr := f.store.Load(ctx)
		assert.ErrorIs(t, loadErr, wslkiterrors.ErrStateNotFound)
	})

	t.Run("missing image after build is its own failure", func(t *testing.T) {
		f := newPhase1Fixture(t)
		// Create the source tree but no built image
		require.NoError(t, os.MkdirAll(f.cfg.Kernel.Dir, 0o755))

		r, err := f.controller().Run(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, wslkiterrors.ErrArtifactMissing)
		assert.NotErrorIs(t, err, wslkiterrors.ErrCommandFailed)
		assert.Equal(t, constants.RunStatusFailed, r.Status)

		_, loadErr := f.store.Load(ctx)
		assert.ErrorIs(t, loadErr, wslkiterrors.ErrStateNotFound)
	})

	// Note: the subtest name must not contain "nproc": t.TempDir embeds the
	// subtest name in its path, which would make the fake runner's substring
	// failure match hit every command that mentions a temp path.
	t.Run("falls back to configured jobs when processor count query fails", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		delete(f.runner.outputs, "nproc")
		f.runner.failOn["nproc"] = errors.New("not found")
		f.cfg.Build.FallbackJobs = 4

		_, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.True(t, f.runner.sawCommand("make -j4 "))
	})

	t.Run("undiscoverable user ends at state saved", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		f.detector.user = ""

		r, err := f.controller().Run(ctx)

		// Success: the build and the handoff record are intact, only the
		// convenience trigger is skipped
		require.NoError(t, err)
		assert.Equal(t, constants.RunStatusStateSaved, r.Status)
		assert.Zero(t, f.outer.calls)

		scriptPath := filepath.Join(f.cfg.Paths.WindowsTempDirMount, constants.Phase2ScriptName)
		_, statErr := os.Stat(scriptPath)
		assert.True(t, os.IsNotExist(statErr))

		st, err := f.store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, st.Phase1Completed)
		assert.Empty(t, st.WindowsUser)
	})

	t.Run("trigger interrupt does not fail the run", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		f.outer.outcome = TriggerInterrupted
		f.outer.err = errors.New("signal: killed")

		r, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, constants.RunStatusTriggered, r.Status)
	})

	t.Run("trigger failure still succeeds because state is durable", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		f.outer.outcome = TriggerFailed
		f.outer.err = wslkiterrors.ErrTriggerFailed

		r, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, constants.RunStatusTriggered, r.Status)

		st, loadErr := f.store.Load(ctx)
		require.NoError(t, loadErr)
		assert.True(t, st.Phase1Completed)
	})

	t.Run("trigger receives the windows-native script path", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)

		_, err := f.controller().Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, WindowsScriptPath(f.cfg.Paths.WindowsTempDir), f.outer.scriptPath)
	})

	t.Run("records the failed step in the audit trail", func(t *testing.T) {
		f := newPhase1Fixture(t)
		f.seedKernelSource(t)
		f.runner.failOn["apt update"] = errors.New("network unreachable")

		r, err := f.controller().Run(ctx)

		require.Error(t, err)
		require.NotEmpty(t, r.Transitions)
		last := r.Transitions[len(r.Transitions)-1]
		assert.Equal(t, constants.RunStatusFailed, last.ToStatus)
		assert.Contains(t, last.Reason, "dependency installation")
	})
}

