package phase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wslkit/wslkit/internal/state"
)

// Cleanup removes the temporary state tree for the current side of the
// boundary. It is best-effort by policy: failures are logged as warnings and
// never escalated, and calling it with no state present (or twice in a row)
// succeeds. It only touches the state directory, never the kernel source
// tree or a staged image, so an in-progress Phase 1 loses nothing but its
// handoff record.
func Cleanup(ctx context.Context, store state.Store, logger zerolog.Logger) {
	if err := store.Delete(ctx); err != nil {
		logger.Warn().Err(err).Msg("cleanup failed")
		return
	}
	logger.Info().Msg("cleanup completed")
}
