package storage

import (
	"context"
	"log/slog"
	"time"
)

// CleanupExpiredTransfers periodically drops finished transfers whose TTL has passed.
// It returns when ctx is done.
func (stg *storage) CleanupExpiredTransfers(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		stg.log.WarnContext(ctx, "cleanup expired transfers disabled", slog.Duration("interval", interval))

		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := stg.log.With(slog.String("action", "cleanup_expired_transfers"), slog.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			stg.performCleanup(ctx)
		case <-ctx.Done():
			log.InfoContext(ctx, "cleanup expired transfers stopped")

			return
		}
	}
}

func (stg *storage) performCleanup(ctx context.Context) {
	now := time.Now()

	stg.mu.Lock()

	expired := stg.getExpiredTransfers(now)
	for _, id := range expired {
		delete(stg.transfers, id)
	}

	count := len(stg.transfers)

	stg.mu.Unlock()

	if len(expired) == 0 {
		stg.log.DebugContext(ctx, "no expired transfers found to clean up")

		return
	}

	stg.metrics.RecordCleanup(len(expired))
	stg.metrics.SetTrackedTransfers(count)

	stg.log.InfoContext(ctx, "expired transfers removed",
		slog.Int("count", len(expired)),
		slog.Int("remaining", count))
}

// getExpiredTransfers must be called with mu held. In-flight transfers are never expired.
func (stg *storage) getExpiredTransfers(now time.Time) []string {
	var expired []string

	for id, tr := range stg.transfers {
		if tr.Status.Terminal() && tr.ExpiresAt.Before(now) {
			expired = append(expired, id)
		}
	}

	return expired
}
