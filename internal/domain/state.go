// Package domain provides shared domain types for the wslkit two-phase automation.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"time"

	"github.com/wslkit/wslkit/internal/constants"
)

// HandoffState is the record persisted across the WSL restart boundary.
// It is the sole synchronization mechanism between Phase 1 (inside WSL)
// and Phase 2 (on Windows): written exactly once at the end of a successful
// Phase 1 run, read exactly once at the start of Phase 2.
//
// Example JSON representation:
//
//	{
//	    "run_id": "7f9c2e9a-...",
//	    "phase1_completed": true,
//	    "kernel_built": true,
//	    "windows_user": "alice",
//	    "created_at": 1735300000,
//	    "schema_version": 1
//	}
type HandoffState struct {
	// RunID identifies the Phase 1 run that produced this state.
	RunID string `json:"run_id"`

	// Phase1Completed is true once the build and staging both succeeded.
	// Phase 2 must refuse to act unless this is true; a zero-valued or
	// partial state is never treated as success.
	Phase1Completed bool `json:"phase1_completed"`

	// KernelBuilt is true once the kernel image was confirmed present.
	KernelBuilt bool `json:"kernel_built"`

	// WindowsUser is the Windows account under which .wslconfig must be
	// written. Empty when the user could not be discovered from inside WSL.
	WindowsUser string `json:"windows_user"`

	// CreatedAt is the unix timestamp of the Phase 1 completion, used for
	// diagnosing stale state.
	CreatedAt int64 `json:"created_at"`

	// SchemaVersion indicates the version of the HandoffState schema.
	SchemaVersion int `json:"schema_version"`
}

// Transition records a single status change of a run.
type Transition struct {
	// FromStatus is the status before the transition.
	FromStatus constants.RunStatus `json:"from_status"`

	// ToStatus is the status after the transition.
	ToStatus constants.RunStatus `json:"to_status"`

	// Timestamp is when the transition occurred (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Reason is an optional explanation for the transition.
	Reason string `json:"reason,omitempty"`
}

// Run tracks a single phase execution in memory. Unlike HandoffState it is
// never shared across the restart boundary; it exists so the controller can
// enforce valid step ordering and report exactly which step a run died in.
type Run struct {
	// ID is the unique identifier for the run (UUID).
	ID string `json:"id"`

	// Phase is the workflow half this run executes (1 or 2).
	Phase int `json:"phase"`

	// Status is the current state in the run lifecycle.
	Status constants.RunStatus `json:"status"`

	// Transitions is the audit trail of all status changes.
	Transitions []Transition `json:"transitions,omitempty"`

	// CreatedAt is when the run was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the run was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is when the run reached a terminal state (nil otherwise).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
