// Package errors provides centralized error handling for wslkit.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEnvironmentMismatch indicates a phase was invoked in the wrong
	// environment (Phase 1 outside WSL, or Phase 2 inside WSL).
	ErrEnvironmentMismatch = errors.New("environment mismatch")

	// ErrSourceNotFound indicates the kernel source directory is absent and
	// auto-clone is disabled.
	ErrSourceNotFound = errors.New("kernel source directory not found")

	// ErrCommandFailed indicates that an external command execution failed.
	ErrCommandFailed = errors.New("command failed")

	// ErrArtifactMissing indicates the build reported success but the
	// expected kernel image is absent. Distinct from ErrCommandFailed so a
	// silently empty build can be told apart from a broken copy step.
	ErrArtifactMissing = errors.New("kernel image missing after build")

	// ErrStateNotFound indicates no handoff state file exists.
	ErrStateNotFound = errors.New("handoff state not found")

	// ErrStateCorrupted indicates the handoff state file exists but cannot
	// be parsed.
	ErrStateCorrupted = errors.New("handoff state corrupted")

	// ErrPhaseIncomplete indicates Phase 2 loaded state that does not mark
	// Phase 1 as completed.
	ErrPhaseIncomplete = errors.New("phase 1 not completed")

	// ErrInvalidPhase indicates an unknown phase selector was supplied.
	ErrInvalidPhase = errors.New("invalid phase")

	// ErrInvalidTransition indicates an attempt to move a run to a status
	// the state machine does not allow from its current status.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrTriggerFailed indicates the Phase 2 trigger call failed in a way
	// that cannot be attributed to the expected WSL teardown.
	ErrTriggerFailed = errors.New("phase 2 trigger failed")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)
