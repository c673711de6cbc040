package config

import (
	"fmt"

	"github.com/wslkit/wslkit/internal/errors"
)

// Validate checks the configuration for values that would make a run fail in
// confusing ways later. It returns the first problem found, wrapped with
// ErrConfigInvalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	required := []struct {
		name  string
		value string
	}{
		{"kernel.repo", cfg.Kernel.Repo},
		{"kernel.branch", cfg.Kernel.Branch},
		{"kernel.dest", cfg.Kernel.Dest},
		{"kernel.dir", cfg.Kernel.Dir},
		{"build.kconfig", cfg.Build.KConfig},
		{"paths.linux_temp_dir", cfg.Paths.LinuxTempDir},
		{"paths.windows_temp_dir", cfg.Paths.WindowsTempDir},
		{"paths.windows_temp_dir_mount", cfg.Paths.WindowsTempDirMount},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %s %w", errors.ErrConfigInvalid, field.name, errors.ErrEmptyValue)
		}
	}

	if cfg.Build.FallbackJobs < 1 {
		return fmt.Errorf("%w: build.fallback_jobs must be at least 1, got %d",
			errors.ErrConfigInvalid, cfg.Build.FallbackJobs)
	}
	if cfg.Build.Timeout < 0 {
		return fmt.Errorf("%w: build.timeout cannot be negative, got %s",
			errors.ErrConfigInvalid, cfg.Build.Timeout)
	}

	return nil
}
