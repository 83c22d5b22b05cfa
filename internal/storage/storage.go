// Package storage keeps tracked transfers in memory until their TTL runs out.
package storage

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
	"vidpeek/internal/observability"
)

// Storer defines the interface for storage operations.
type Storer interface {
	SetTransfer(ctx context.Context, tr *entity.Transfer)
	GetTransfer(ctx context.Context, id string) (entity.Transfer, error)
	GetTransfers(ctx context.Context) ([]entity.Transfer, error)
	// UpdateTransferStatus is a no-op once the transfer reached a terminal status.
	UpdateTransferStatus(ctx context.Context, id string, status entity.TransferStatus, progress int, errorMsg string)

	CleanupExpiredTransfers(ctx context.Context, interval time.Duration)
}

type storage struct {
	log     *slog.Logger
	metrics *observability.Metrics

	mu        sync.RWMutex
	transfers map[string]*entity.Transfer // transfer ID : transfer
}

// New creates a new in-memory storage instance. metrics may be nil.
func New(log *slog.Logger, metrics *observability.Metrics) Storer {
	return &storage{
		log:       log.With(slog.String("package", "storage")),
		metrics:   metrics,
		transfers: make(map[string]*entity.Transfer),
	}
}

func (stg *storage) SetTransfer(ctx context.Context, tr *entity.Transfer) {
	if tr == nil || tr.ID == "" {
		stg.log.ErrorContext(ctx, "set transfer: nil transfer or empty id")

		return
	}

	stg.mu.Lock()
	stg.transfers[tr.ID] = tr
	count := len(stg.transfers)
	stg.mu.Unlock()

	stg.metrics.SetTrackedTransfers(count)
}

// GetTransfer returns a snapshot of a tracked transfer.
func (stg *storage) GetTransfer(_ context.Context, id string) (entity.Transfer, error) {
	if id == "" {
		return entity.Transfer{}, errs.ErrTransferIDEmpty
	}

	stg.mu.RLock()
	defer stg.mu.RUnlock()

	tr, ok := stg.transfers[id]
	if !ok {
		return entity.Transfer{}, errs.ErrTransferNotFound
	}

	return *tr, nil
}

// GetTransfers returns snapshots of all tracked transfers, oldest first.
func (stg *storage) GetTransfers(_ context.Context) ([]entity.Transfer, error) {
	stg.mu.RLock()
	defer stg.mu.RUnlock()

	if len(stg.transfers) == 0 {
		return nil, errs.ErrNoTransfers
	}

	transfers := make([]entity.Transfer, 0, len(stg.transfers))
	for _, tr := range stg.transfers {
		transfers = append(transfers, *tr)
	}

	slices.SortFunc(transfers, func(a, b entity.Transfer) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return transfers, nil
}

func (stg *storage) UpdateTransferStatus(
	ctx context.Context,
	id string,
	status entity.TransferStatus,
	progress int,
	errorMsg string,
) {
	stg.mu.Lock()
	defer stg.mu.Unlock()

	tr, ok := stg.transfers[id]
	if !ok {
		stg.log.WarnContext(ctx, "update transfer status: transfer not tracked", slog.String("id", id))

		return
	}

	if tr.Status.Terminal() {
		return
	}

	tr.Status = status
	tr.UpdatedAt = time.Now()

	if progress != 0 {
		tr.Progress = progress
	}

	if errorMsg != "" {
		tr.Error = errorMsg
	}

	stg.log.DebugContext(ctx, "transfer status updated", slog.Any("transfer", *tr))
}
