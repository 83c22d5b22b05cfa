package storage_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"vidpeek/internal/entity"
)

func TestCleanupExpiredTransfers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		storer, metrics := newStorer(t)
		now := time.Now()

		storer.SetTransfer(ctx, &entity.Transfer{
			ID:        "expired",
			Status:    entity.TransferStatusCompleted,
			ExpiresAt: now.Add(time.Minute),
		})
		storer.SetTransfer(ctx, &entity.Transfer{
			ID:        "fresh",
			Status:    entity.TransferStatusFailed,
			ExpiresAt: now.Add(time.Hour),
		})
		storer.SetTransfer(ctx, &entity.Transfer{
			ID:        "stuck",
			Status:    entity.TransferStatusInFlight,
			ExpiresAt: now.Add(-time.Hour),
		})

		go storer.CleanupExpiredTransfers(ctx, 30*time.Second)

		time.Sleep(90 * time.Second)
		synctest.Wait()

		if _, err := storer.GetTransfer(ctx, "expired"); err == nil {
			t.Error("expired transfer still tracked")
		}

		for _, id := range []string{"fresh", "stuck"} {
			if _, err := storer.GetTransfer(ctx, id); err != nil {
				t.Errorf("transfer %s dropped: %v", id, err)
			}
		}

		if got := testutil.ToFloat64(metrics.CleanupTransfersTotal); got != 1 {
			t.Errorf("cleaned up = %v, want 1", got)
		}

		if got := testutil.ToFloat64(metrics.TrackedTransfers); got != 2 {
			t.Errorf("tracked transfers = %v, want 2", got)
		}

		cancel()
		synctest.Wait()
	})
}

func TestCleanupExpiredTransfersDisabled(t *testing.T) {
	storer, _ := newStorer(t)

	done := make(chan struct{})

	go func() {
		storer.CleanupExpiredTransfers(t.Context(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup with zero interval did not return")
	}
}
