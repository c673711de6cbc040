// Package phase implements the two-phase handoff protocol that moves a
// kernel build across the WSL restart boundary.
//
// This file implements the run state machine, which enforces valid step
// ordering and maintains an audit trail of all status changes.
//
// Import rules:
//   - CAN import: internal/clock, internal/constants, internal/domain,
//     internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/tui
package phase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wslkit/wslkit/internal/clock"
	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/domain"
	wslkiterrors "github.com/wslkit/wslkit/internal/errors"
)

// ValidTransitions defines all allowed state transitions in the run lifecycle.
// Format: from_status -> []to_statuses
//
// The Phase 1 machine is linear with a failure edge out of every active state:
//
//	NotStarted → SourceReady → DepsInstalled → Built → ArtifactStaged →
//	StateSaved → ScriptGenerated → Triggered
//
// StateSaved has no forward edge requirement: a run whose Windows user could
// not be discovered legitimately ends there (script generation is skipped).
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.RunStatus][]constants.RunStatus{
	constants.RunStatusNotStarted:      {constants.RunStatusSourceReady, constants.RunStatusFailed},
	constants.RunStatusSourceReady:     {constants.RunStatusDepsInstalled, constants.RunStatusFailed},
	constants.RunStatusDepsInstalled:   {constants.RunStatusBuilt, constants.RunStatusFailed},
	constants.RunStatusBuilt:           {constants.RunStatusArtifactStaged, constants.RunStatusFailed},
	constants.RunStatusArtifactStaged:  {constants.RunStatusStateSaved, constants.RunStatusFailed},
	constants.RunStatusStateSaved:      {constants.RunStatusScriptGenerated, constants.RunStatusFailed},
	constants.RunStatusScriptGenerated: {constants.RunStatusTriggered, constants.RunStatusFailed},
}

// terminalStatuses defines states where no further transitions are allowed.
// Terminal states are those NOT present as keys in ValidTransitions.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStatuses = map[constants.RunStatus]bool{
	constants.RunStatusTriggered: true,
	constants.RunStatusFailed:    true,
}

// IsValidTransition checks if a transition from one status to another is allowed.
// Returns false for transitions from terminal states or to the same state.
func IsValidTransition(from, to constants.RunStatus) bool {
	if from == to {
		return false
	}

	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus returns true for states where no further transitions are
// allowed. Terminal states: Triggered, Failed.
func IsTerminalStatus(status constants.RunStatus) bool {
	return terminalStatuses[status]
}

// NewRun creates a run record for the given phase in the NotStarted state.
func NewRun(phaseNum int, clk clock.Clock) *domain.Run {
	now := clk.Now().UTC()
	return &domain.Run{
		ID:        uuid.NewString(),
		Phase:     phaseNum,
		Status:    constants.RunStatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition validates and applies a state transition to the run.
// It records the transition in the run's history and updates timestamps.
//
// Returns an error if:
//   - ctx is canceled
//   - run is nil
//   - The transition is invalid (returns wrapped ErrInvalidTransition)
func Transition(ctx context.Context, run *domain.Run, clk clock.Clock, to constants.RunStatus, reason string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if run == nil {
		return fmt.Errorf("%w: run is nil", wslkiterrors.ErrInvalidTransition)
	}

	from := run.Status

	if !IsValidTransition(from, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			wslkiterrors.ErrInvalidTransition, from, to)
	}

	now := clk.Now().UTC()

	run.Transitions = append(run.Transitions, domain.Transition{
		FromStatus: from,
		ToStatus:   to,
		Timestamp:  now,
		Reason:     reason,
	})

	run.Status = to
	run.UpdatedAt = now

	if IsTerminalStatus(to) {
		run.CompletedAt = &now
	}

	return nil
}
