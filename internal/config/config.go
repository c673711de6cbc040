// Package config provides configuration management for wslkit with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (WSLKIT_* prefix)
//  3. Project config (.wslkit/config.yaml)
//  4. Global config (~/.wslkit/config.yaml)
//  5. Built-in defaults
//
// The resulting Config struct is constructed once at startup and passed by
// reference into each controller; nothing reads ambient global flag state.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for wslkit.
type Config struct {
	// Kernel contains settings for the kernel source and artifact handling.
	Kernel KernelConfig `yaml:"kernel" mapstructure:"kernel"`

	// Build contains settings for the kernel build invocation.
	Build BuildConfig `yaml:"build" mapstructure:"build"`

	// Paths contains the per-side state directory layout.
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
}

// KernelConfig contains settings for kernel source acquisition and staging.
type KernelConfig struct {
	// Repo is the kernel repository URL to clone.
	// Default: Microsoft's WSL2-Linux-Kernel repository.
	Repo string `yaml:"repo" mapstructure:"repo"`

	// Branch is the branch to shallow-clone.
	// Default: "linux-msft-wsl-6.6.y"
	Branch string `yaml:"branch" mapstructure:"branch"`

	// Dest is the Windows path the built kernel image is staged to.
	// Default: "C:/bzImage"
	Dest string `yaml:"dest" mapstructure:"dest"`

	// Dir is the local source directory name inside WSL.
	// Default: "WSL2-Linux-Kernel"
	Dir string `yaml:"dir" mapstructure:"dir"`

	// AutoClone controls whether a missing source directory is cloned
	// automatically. When false, a missing directory is a fatal error.
	// Default: true
	AutoClone bool `yaml:"auto_clone" mapstructure:"auto_clone"`
}

// BuildConfig contains settings for the kernel build step.
type BuildConfig struct {
	// FallbackJobs is the make parallelism used when the processor count
	// cannot be queried. Default: 4
	FallbackJobs int `yaml:"fallback_jobs" mapstructure:"fallback_jobs"`

	// KConfig is the kernel config file passed to make, relative to the
	// source tree. Default: "Microsoft/config-wsl"
	KConfig string `yaml:"kconfig" mapstructure:"kconfig"`

	// Timeout bounds the build and install commands. Zero disables the
	// bound; a hung build then blocks indefinitely.
	// Default: 0 (disabled)
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// PathsConfig contains the state directory layout on both sides of the
// restart boundary.
type PathsConfig struct {
	// LinuxTempDir is the state directory as seen from inside WSL.
	// Default: "/tmp/wsl2_automation"
	LinuxTempDir string `yaml:"linux_temp_dir" mapstructure:"linux_temp_dir"`

	// WindowsTempDir is the state directory as seen from Windows.
	// Default: "C:/temp/wsl2_automation"
	WindowsTempDir string `yaml:"windows_temp_dir" mapstructure:"windows_temp_dir"`

	// WindowsTempDirMount is the Windows state directory as seen from
	// inside WSL. Default: "/mnt/c/temp/wsl2_automation"
	WindowsTempDirMount string `yaml:"windows_temp_dir_mount" mapstructure:"windows_temp_dir_mount"`
}
