package config

import (
	"github.com/spf13/viper"

	"github.com/wslkit/wslkit/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Kernel: KernelConfig{
			Repo:      constants.DefaultKernelRepo,
			Branch:    constants.DefaultKernelBranch,
			Dest:      constants.DefaultKernelDest,
			Dir:       constants.DefaultKernelDir,
			AutoClone: true,
		},
		Build: BuildConfig{
			FallbackJobs: constants.DefaultBuildJobs,
			KConfig:      constants.KernelConfigRelPath,

			// Timeout: 0 leaves long builds unbounded; bounding them is an
			// operational choice, not part of the handoff protocol.
			Timeout: 0,
		},
		Paths: PathsConfig{
			LinuxTempDir:        constants.LinuxTempDir,
			WindowsTempDir:      constants.WindowsTempDir,
			WindowsTempDirMount: constants.WindowsTempDirMount,
		},
	}
}

// setDefaults registers the default configuration values with viper so that
// config files and environment variables only need to name what they change.
func setDefaults(v *viper.Viper) {
	v.SetDefault("kernel.repo", constants.DefaultKernelRepo)
	v.SetDefault("kernel.branch", constants.DefaultKernelBranch)
	v.SetDefault("kernel.dest", constants.DefaultKernelDest)
	v.SetDefault("kernel.dir", constants.DefaultKernelDir)
	v.SetDefault("kernel.auto_clone", true)

	v.SetDefault("build.fallback_jobs", constants.DefaultBuildJobs)
	v.SetDefault("build.kconfig", constants.KernelConfigRelPath)
	v.SetDefault("build.timeout", 0)

	v.SetDefault("paths.linux_temp_dir", constants.LinuxTempDir)
	v.SetDefault("paths.windows_temp_dir", constants.WindowsTempDir)
	v.SetDefault("paths.windows_temp_dir_mount", constants.WindowsTempDirMount)
}
