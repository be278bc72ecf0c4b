package printing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunRetentionSweep deletes archived renders older than retention, once at
// startup and then every interval, until ctx is cancelled. It blocks, so
// callers run it on its own goroutine.
func RunRetentionSweep(ctx context.Context, archive HTMLArchive, retention, interval time.Duration, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		deleted, err := archive.CleanupOlderThan(ctx, retention)
		if err != nil {
			logger.Warn("render retention sweep failed", zap.Error(err))
		} else if deleted > 0 {
			logger.Info("render retention sweep removed expired renders",
				zap.Int("deleted", deleted))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
