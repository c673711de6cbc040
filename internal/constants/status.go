package constants

// RunStatus represents the state of a phase run in the wslkit state machine.
// Status values use snake_case for JSON serialization compatibility.
type RunStatus string

// Run status constants define the valid states a Phase 1 run moves through.
// The machine is linear; every non-terminal state can also fail:
//
//	NotStarted → SourceReady → DepsInstalled → Built → ArtifactStaged →
//	StateSaved → ScriptGenerated → Triggered
//
// Triggered is the terminal success state rather than "completed" because the
// triggering action tears down the environment the run executes in; the run
// never observes its own completion.
const (
	// RunStatusNotStarted indicates a run has been created but no step has executed.
	RunStatusNotStarted RunStatus = "not_started"

	// RunStatusSourceReady indicates the kernel source tree is present
	// (freshly cloned or reused).
	RunStatusSourceReady RunStatus = "source_ready"

	// RunStatusDepsInstalled indicates build dependencies were installed.
	RunStatusDepsInstalled RunStatus = "deps_installed"

	// RunStatusBuilt indicates the kernel build completed.
	RunStatusBuilt RunStatus = "built"

	// RunStatusArtifactStaged indicates the kernel image was verified and
	// copied to its Windows destination.
	RunStatusArtifactStaged RunStatus = "artifact_staged"

	// RunStatusStateSaved indicates the handoff state was durably written.
	// A run that cannot generate a Phase 2 script (no Windows user) ends
	// here and still counts as success.
	RunStatusStateSaved RunStatus = "state_saved"

	// RunStatusScriptGenerated indicates the Phase 2 script was written to
	// the Windows filesystem.
	RunStatusScriptGenerated RunStatus = "script_generated"

	// RunStatusTriggered indicates the Phase 2 script was invoked. Terminal.
	RunStatusTriggered RunStatus = "triggered"

	// RunStatusFailed indicates a step failed and the run aborted. Terminal.
	RunStatusFailed RunStatus = "failed"
)
