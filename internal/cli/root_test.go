package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	t.Run("registers subcommands", func(t *testing.T) {
		cmd := newRootCmd(&GlobalFlags{}, &AutomationFlags{}, BuildInfo{})

		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "status")
		assert.Contains(t, names, "init")
	})

	t.Run("root carries the phase dispatch flags", func(t *testing.T) {
		cmd := newRootCmd(&GlobalFlags{}, &AutomationFlags{}, BuildInfo{})

		require.NotNil(t, cmd.Flags().Lookup("phase"))
		require.NotNil(t, cmd.Flags().Lookup("cleanup"))
		require.NotNil(t, cmd.Flags().Lookup("kernel-repo"))
		require.NotNil(t, cmd.Flags().Lookup("no-clone"))
	})

	t.Run("errors are printed by the caller, not cobra", func(t *testing.T) {
		cmd := newRootCmd(&GlobalFlags{}, &AutomationFlags{}, BuildInfo{})

		assert.True(t, cmd.SilenceUsage)
		assert.True(t, cmd.SilenceErrors)
	})
}

func TestFormatVersion(t *testing.T) {
	t.Run("full build info", func(t *testing.T) {
		got := formatVersion(BuildInfo{Version: "1.2.0", Commit: "abc123", Date: "2026-01-15"})

		assert.Equal(t, "1.2.0 (commit: abc123, built: 2026-01-15)", got)
	})

	t.Run("zero values fall back to dev placeholders", func(t *testing.T) {
		got := formatVersion(BuildInfo{})

		assert.Equal(t, "dev (commit: none, built: unknown)", got)
	})
}

func TestOverridesFromFlags(t *testing.T) {
	t.Run("only changed flags are marked set", func(t *testing.T) {
		af := &AutomationFlags{}
		cmd := newRootCmd(&GlobalFlags{}, af, BuildInfo{})
		require.NoError(t, cmd.Flags().Set("kernel-branch", "linux-msft-wsl-6.1.y"))

		overrides := overridesFromFlags(cmd, af)

		assert.True(t, overrides.KernelBranchSet)
		assert.Equal(t, "linux-msft-wsl-6.1.y", overrides.KernelBranch)
		assert.False(t, overrides.KernelRepoSet)
		assert.False(t, overrides.KernelDestSet)
		assert.False(t, overrides.KernelDirSet)
		assert.False(t, overrides.NoCloneSet)
	})

	t.Run("no-clone flag propagates", func(t *testing.T) {
		af := &AutomationFlags{}
		cmd := newRootCmd(&GlobalFlags{}, af, BuildInfo{})
		require.NoError(t, cmd.Flags().Set("no-clone", "true"))

		overrides := overridesFromFlags(cmd, af)

		assert.True(t, overrides.NoCloneSet)
		assert.True(t, overrides.NoClone)
	})
}
