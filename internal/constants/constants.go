// Package constants provides centralized constant values used throughout wslkit.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by wslkit for state persistence.
const (
	// StateFileName is the name of the JSON file that carries handoff state
	// across the WSL restart boundary. The same name is used on both sides.
	StateFileName = "automation_state.json"

	// Phase2ScriptName is the name of the generated PowerShell script that
	// performs the Windows half of the workflow.
	Phase2ScriptName = "phase2.ps1"
)

// Temp directory locations. Each side of the restart boundary has its own
// copy of the state tree; the Windows directory is additionally reachable
// from inside WSL through the drvfs mount.
const (
	// LinuxTempDir is the state directory as seen from inside WSL.
	LinuxTempDir = "/tmp/wsl2_automation"

	// WindowsTempDir is the state directory as seen from Windows.
	WindowsTempDir = "C:/temp/wsl2_automation"

	// WindowsTempDirMount is the Windows state directory as seen from inside
	// WSL, used when Phase 1 writes the Phase 2 script for Windows to run.
	WindowsTempDirMount = "/mnt/c/temp/wsl2_automation"
)

// Kernel build defaults. These mirror Microsoft's published WSL2 kernel
// build instructions and can all be overridden via config or flags.
const (
	// DefaultKernelRepo is the upstream WSL2 kernel repository.
	DefaultKernelRepo = "https://github.com/microsoft/WSL2-Linux-Kernel.git"

	// DefaultKernelBranch is the kernel branch to shallow-clone.
	DefaultKernelBranch = "linux-msft-wsl-6.6.y"

	// DefaultKernelDest is where the built image is staged on Windows.
	DefaultKernelDest = "C:/bzImage"

	// DefaultKernelDir is the local checkout directory name.
	DefaultKernelDir = "WSL2-Linux-Kernel"

	// KernelImageRelPath is where the build drops the kernel image,
	// relative to the source tree root.
	KernelImageRelPath = "arch/x86/boot/bzImage"

	// KernelConfigRelPath is the WSL kernel config shipped in the source tree.
	KernelConfigRelPath = "Microsoft/config-wsl"

	// DefaultBuildJobs is the make parallelism fallback when the host
	// processor count cannot be determined.
	DefaultBuildJobs = 4
)

// Directory names used by wslkit for organizing its own data.
const (
	// Home is the hidden directory name where wslkit stores config and logs.
	// This directory is created in the user's home directory.
	Home = ".wslkit"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// ConfigFileName is the name of the wslkit configuration file.
	ConfigFileName = "config.yaml"
)

// Settle delays used by Phase 2. The restart path deliberately uses fixed
// delays rather than polled readiness checks: the .wslconfig write must be
// visible before the shutdown, and the shutdown must drain before anything
// reports success.
const (
	// ConfigSettleDelay is the pause between writing .wslconfig and issuing
	// the WSL shutdown.
	ConfigSettleDelay = 2 * time.Second

	// ShutdownSettleDelay is the pause the generated script waits after
	// issuing the shutdown before reporting success.
	ShutdownSettleDelay = 5 * time.Second
)

// StateSchemaVersion is the current version of the handoff state JSON schema.
// This enables forward-compatible schema migrations.
const StateSchemaVersion = 1
