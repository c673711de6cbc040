package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinels are distinct", func(t *testing.T) {
		sentinels := []error{
			ErrEnvironmentMismatch,
			ErrSourceNotFound,
			ErrCommandFailed,
			ErrArtifactMissing,
			ErrStateNotFound,
			ErrStateCorrupted,
			ErrPhaseIncomplete,
			ErrInvalidPhase,
			ErrInvalidTransition,
			ErrTriggerFailed,
			ErrConfigInvalid,
			ErrEmptyValue,
		}

		for i, a := range sentinels {
			for j, b := range sentinels {
				if i == j {
					continue
				}
				assert.NotErrorIs(t, a, b, "sentinel %d matched sentinel %d", i, j)
			}
		}
	})

	t.Run("state not found and corrupted are distinguishable", func(t *testing.T) {
		// Phase 2 relies on telling "run phase 1 first" apart from
		// "state exists but is damaged"
		notFound := fmt.Errorf("/tmp/state.json: %w", ErrStateNotFound)
		corrupted := fmt.Errorf("%w: unexpected end of JSON input", ErrStateCorrupted)

		require.ErrorIs(t, notFound, ErrStateNotFound)
		require.NotErrorIs(t, notFound, ErrStateCorrupted)
		require.ErrorIs(t, corrupted, ErrStateCorrupted)
		require.NotErrorIs(t, corrupted, ErrStateNotFound)
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps with message", func(t *testing.T) {
		err := Wrap(ErrCommandFailed, "apt update")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCommandFailed)
		assert.Contains(t, err.Error(), "apt update")
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "anything"))
	})
}

func TestWrapf(t *testing.T) {
	t.Run("formats message", func(t *testing.T) {
		err := Wrapf(ErrArtifactMissing, "expected image at %s", "/kernel/bzImage")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrArtifactMissing)
		assert.Contains(t, err.Error(), "/kernel/bzImage")
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, Wrapf(nil, "fmt %d", 42))
	})
}

func TestUserMessage(t *testing.T) {
	t.Run("maps known sentinels through wrap chains", func(t *testing.T) {
		err := fmt.Errorf("phase 1 must run inside WSL2: %w", ErrEnvironmentMismatch)

		msg := UserMessage(err)

		assert.Contains(t, msg, "environment")
	})

	t.Run("falls back to raw error text", func(t *testing.T) {
		err := stderrors.New("something unmapped")

		assert.Equal(t, "something unmapped", UserMessage(err))
	})

	t.Run("empty for nil", func(t *testing.T) {
		assert.Empty(t, UserMessage(nil))
	})
}

func TestActionable(t *testing.T) {
	t.Run("suggests remediation for known errors", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", ErrStateCorrupted)

		action := Actionable(err)

		assert.Contains(t, action, "--cleanup")
	})

	t.Run("empty when no mapping exists", func(t *testing.T) {
		assert.Empty(t, Actionable(stderrors.New("unmapped")))
	})

	t.Run("empty for nil", func(t *testing.T) {
		assert.Empty(t, Actionable(nil))
	})
}
