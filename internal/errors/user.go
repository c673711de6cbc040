package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrEnvironmentMismatch,
		info: ErrorInfo{
			Message: "This phase cannot run in the current environment.",
			Action:  "Run phase 1 inside WSL2 and phase 2 from Windows.",
		},
	},
	{
		err: ErrSourceNotFound,
		info: ErrorInfo{
			Message: "The kernel source directory does not exist and auto-clone is disabled.",
			Action:  "Clone the repository manually, or drop --no-clone to let wslkit clone it.",
		},
	},
	{
		err: ErrArtifactMissing,
		info: ErrorInfo{
			Message: "The build finished but no kernel image was produced.",
			Action:  "Check the make output above; the build likely failed silently.",
		},
	},
	{
		err: ErrStateNotFound,
		info: ErrorInfo{
			Message: "No handoff state was found from a prior phase 1 run.",
			Action:  "Run phase 1 inside WSL2 first.",
		},
	},
	{
		err: ErrStateCorrupted,
		info: ErrorInfo{
			Message: "The handoff state file exists but could not be parsed.",
			Action:  "Run 'wslkit --cleanup' and repeat phase 1.",
		},
	},
	{
		err: ErrPhaseIncomplete,
		info: ErrorInfo{
			Message: "Phase 1 did not complete; phase 2 refuses to reconfigure WSL.",
			Action:  "Re-run phase 1 inside WSL2 and let it finish.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "An external command exited with an error.",
			Action:  "Check the command output above, fix the underlying issue, and retry.",
		},
	},
	{
		err: ErrInvalidPhase,
		info: ErrorInfo{
			Message: "The --phase value must be \"1\" or \"2\".",
			Action:  "",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// Falls back to the raw error text when no mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns the suggested remediation for the given error,
// or empty string if none is known.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
