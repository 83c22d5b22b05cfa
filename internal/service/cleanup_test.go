package service

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"vidpeek/internal/entity"
)

func TestCleanupExpired(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ts := newTestService(t, testOptions{})
		ts.cfg.Transfer.TTL = time.Minute

		finished, err := ts.StartTransfer(t.Context(), testURL, testFormat)
		if err != nil {
			t.Fatalf("StartTransfer() failed: %v", err)
		}

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		go ts.CleanupExpired(ctx, 30*time.Second)

		// first transfer completes, then outlives its TTL
		time.Sleep(90 * time.Second)

		stuck := &entity.Transfer{
			ID:        "stuck",
			Status:    entity.TransferStatusInFlight,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		ts.storer.SetTransfer(t.Context(), stuck)

		time.Sleep(30 * time.Second)
		synctest.Wait()

		if _, err := ts.GetTransfer(t.Context(), finished.ID); err == nil {
			t.Errorf("expired transfer %s still tracked", finished.ID)
		}

		if _, err := ts.GetTransfer(t.Context(), stuck.ID); err != nil {
			t.Errorf("in-flight transfer dropped: %v", err)
		}

		if got := testutil.ToFloat64(ts.metrics.CleanupTransfersTotal); got != 1 {
			t.Errorf("got %v cleaned up, want 1", got)
		}

		cancel()
		ts.Close()
	})
}

func TestCleanupExpiredDisabled(t *testing.T) {
	ts := newTestService(t, testOptions{})

	done := make(chan struct{})

	go func() {
		ts.CleanupExpired(t.Context(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CleanupExpired with zero interval did not return")
	}
}
