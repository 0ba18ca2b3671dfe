package state

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
)

// Janitor calls store.Cleanup every interval until ctx is done.
// A non-positive interval disables the sweep.
func Janitor(ctx context.Context, store Store, interval time.Duration) {
	if store == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx, store)
		}
	}
}

func sweep(ctx context.Context, store Store) int {
	start := time.Now()
	removed := store.Cleanup()
	level := slog.LevelDebug
	if removed > 0 {
		level = slog.LevelInfo
	}
	logger.Event(ctx, "session", level, "session.cleanup",
		slog.String("status", "ok"),
		slog.Int("removed", removed),
		slog.Duration("duration", logger.Took(start)),
	)
	return removed
}
