package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("defaults mirror the published constants", func(t *testing.T) {
		cfg := DefaultConfig()

		require.NotNil(t, cfg)
		assert.Equal(t, constants.DefaultKernelRepo, cfg.Kernel.Repo)
		assert.Equal(t, constants.DefaultKernelBranch, cfg.Kernel.Branch)
		assert.Equal(t, constants.DefaultKernelDest, cfg.Kernel.Dest)
		assert.Equal(t, constants.DefaultKernelDir, cfg.Kernel.Dir)
		assert.True(t, cfg.Kernel.AutoClone)
		assert.Equal(t, constants.DefaultBuildJobs, cfg.Build.FallbackJobs)
		assert.Equal(t, constants.KernelConfigRelPath, cfg.Build.KConfig)
		assert.Equal(t, time.Duration(0), cfg.Build.Timeout)
		assert.Equal(t, constants.LinuxTempDir, cfg.Paths.LinuxTempDir)
		assert.Equal(t, constants.WindowsTempDir, cfg.Paths.WindowsTempDir)
		assert.Equal(t, constants.WindowsTempDirMount, cfg.Paths.WindowsTempDirMount)
	})

	t.Run("defaults validate cleanly", func(t *testing.T) {
		assert.NoError(t, Validate(DefaultConfig()))
	})
}

func TestValidate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty repo", func(c *Config) { c.Kernel.Repo = "" }},
		{"empty branch", func(c *Config) { c.Kernel.Branch = "" }},
		{"empty dest", func(c *Config) { c.Kernel.Dest = "" }},
		{"empty dir", func(c *Config) { c.Kernel.Dir = "" }},
		{"empty kconfig", func(c *Config) { c.Build.KConfig = "" }},
		{"empty linux temp dir", func(c *Config) { c.Paths.LinuxTempDir = "" }},
		{"empty windows temp dir", func(c *Config) { c.Paths.WindowsTempDir = "" }},
		{"empty windows mount dir", func(c *Config) { c.Paths.WindowsTempDirMount = "" }},
		{"zero fallback jobs", func(c *Config) { c.Build.FallbackJobs = 0 }},
		{"negative fallback jobs", func(c *Config) { c.Build.FallbackJobs = -2 }},
		{"negative timeout", func(c *Config) { c.Build.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)

			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrConfigInvalid)
		})
	}
}
