// Package logging provides logging utilities shared by the CLI layer.
// This package contains hooks for zerolog that enrich log events with
// cross-cutting context.
package logging

import "github.com/rs/zerolog"

// EnvironmentHook is a zerolog hook that tags every event with the side of
// the restart boundary the process runs on. Logs from both sides end up
// interleaved in the same rotating file when the Windows temp directory is
// shared, so each line carries its origin.
type EnvironmentHook struct {
	env string
}

// NewEnvironmentHook creates a hook reporting the given environment name
// ("wsl" or "windows").
func NewEnvironmentHook(isWSL bool) *EnvironmentHook {
	env := "windows"
	if isWSL {
		env = "wsl"
	}
	return &EnvironmentHook{env: env}
}

// Run implements zerolog.Hook.
func (h *EnvironmentHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("env", h.env)
}

// Ensure EnvironmentHook implements zerolog.Hook.
var _ zerolog.Hook = (*EnvironmentHook)(nil)
