// Package service drives the resolver and downloader on behalf of the delivery layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidpeek/internal/config"
	"vidpeek/internal/consts"
	"vidpeek/internal/downloader"
	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
	"vidpeek/internal/observability"
	"vidpeek/internal/resolver"
	"vidpeek/internal/storage"
	"vidpeek/pkg/urls"
)

// Service is the caller of the resolver and downloader. It short-circuits empty input,
// records metrics and tracks background transfers.
type Service interface {
	Resolve(ctx context.Context, rawURL string) (entity.VideoMetadata, error)
	Download(ctx context.Context, rawURL, formatID string) (entity.DownloadOutcome, error)

	StartTransfer(ctx context.Context, rawURL, formatID string) (entity.Transfer, error)
	GetTransfer(ctx context.Context, id string) (entity.Transfer, error)
	GetTransfers(ctx context.Context) ([]entity.Transfer, error)

	CleanupExpired(ctx context.Context, interval time.Duration)
	// Close stops accepting new background transfers and waits for running ones.
	Close()
}

type service struct {
	log        *slog.Logger
	cfg        *config.Config
	resolver   resolver.Resolver
	downloader downloader.Downloader
	storer     storage.Storer
	metrics    *observability.Metrics

	// mu orders wg.Go against Close so no Add races Wait.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ Service = (*service)(nil)

// New creates a service. metrics may be nil.
func New(
	cfg *config.Config,
	log *slog.Logger,
	res resolver.Resolver,
	dl downloader.Downloader,
	storer storage.Storer,
	metrics *observability.Metrics,
) Service {
	return &service{
		log:        log.With(slog.String("package", "service")),
		cfg:        cfg,
		resolver:   res,
		downloader: dl,
		storer:     storer,
		metrics:    metrics,
	}
}

// Resolve fetches metadata for rawURL. An empty URL never reaches the resolver.
func (svc *service) Resolve(ctx context.Context, rawURL string) (entity.VideoMetadata, error) {
	rawURL = urls.Normalize(rawURL)
	if rawURL == "" {
		svc.metrics.RecordResolve(observability.ResolveResultEmptyURL)

		return entity.VideoMetadata{}, errs.ErrEmptyURL
	}

	observe := svc.metrics.ResolveTimer()

	meta, err := svc.resolver.Resolve(ctx, entity.VideoRequest{URL: rawURL})

	switch {
	case err == nil:
		observe()
		svc.metrics.RecordResolve(observability.ResolveResultOK)
	case errors.Is(err, errs.ErrInvalidURL):
		svc.metrics.RecordResolve(observability.ResolveResultInvalidURL)
	case errors.Is(err, errs.ErrEmptyURL):
		svc.metrics.RecordResolve(observability.ResolveResultEmptyURL)
	default:
		svc.metrics.RecordResolve(observability.ResolveResultFailed)
		svc.log.ErrorContext(ctx, "resolve", slog.String("url", rawURL), slog.Any("error", err))
	}

	if err != nil {
		return entity.VideoMetadata{}, fmt.Errorf("resolve: %w", err)
	}

	return meta, nil
}

// Download runs a transfer to completion and then pauses for the configured settle delay.
// An empty URL never reaches the downloader.
func (svc *service) Download(ctx context.Context, rawURL, formatID string) (entity.DownloadOutcome, error) {
	rawURL = urls.Normalize(rawURL)
	if rawURL == "" {
		return entity.DownloadOutcome{}, errs.ErrEmptyURL
	}

	outcome, err := svc.transfer(ctx, rawURL, formatID, nil)
	if err != nil {
		return entity.DownloadOutcome{}, err
	}

	time.Sleep(svc.cfg.Transfer.SettleDelay)

	return outcome, nil
}

// StartTransfer resolves rawURL, checks formatID against the offered formats, then
// registers a tracked transfer and runs it in its own goroutine.
// Transfers are independent: the same URL and format may be in flight more than once.
func (svc *service) StartTransfer(ctx context.Context, rawURL, formatID string) (entity.Transfer, error) {
	if svc.isClosed() {
		return entity.Transfer{}, errs.ErrServiceClosed
	}

	rawURL = urls.Normalize(rawURL)
	if rawURL == "" {
		return entity.Transfer{}, errs.ErrEmptyURL
	}

	if formatID == "" {
		return entity.Transfer{}, errs.ErrEmptyFormat
	}

	meta, err := svc.Resolve(ctx, rawURL)
	if err != nil {
		return entity.Transfer{}, err
	}

	if _, ok := meta.Format(formatID); !ok {
		return entity.Transfer{}, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, formatID)
	}

	now := time.Now()
	tr := &entity.Transfer{
		ID:        uuid.NewString(),
		URL:       rawURL,
		Format:    formatID,
		Status:    entity.TransferStatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(svc.ttl()),
	}

	snapshot := *tr

	// the request context ends with the response; the transfer must not
	runCtx := context.WithoutCancel(ctx)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.closed {
		return entity.Transfer{}, errs.ErrServiceClosed
	}

	svc.storer.SetTransfer(ctx, tr)

	svc.wg.Go(func() {
		progressFn := func(ctx context.Context, status entity.TransferStatus, progress int) {
			// failures are recorded below together with the error text
			if status == entity.TransferStatusFailed {
				return
			}

			svc.storer.UpdateTransferStatus(ctx, snapshot.ID, status, progress, "")
		}

		_, err := svc.transfer(runCtx, snapshot.URL, snapshot.Format, progressFn)
		if err != nil {
			svc.storer.UpdateTransferStatus(runCtx, snapshot.ID, entity.TransferStatusFailed, 0, err.Error())
		}
	})

	svc.log.InfoContext(ctx, "transfer started", slog.Any("transfer", snapshot))

	return snapshot, nil
}

func (svc *service) transfer(
	ctx context.Context,
	rawURL, formatID string,
	progressFn downloader.ProgressFunc,
) (entity.DownloadOutcome, error) {
	observe := svc.metrics.TransferTimer()
	svc.metrics.RecordTransferStarted()

	outcome, err := svc.downloader.Transfer(ctx, rawURL, formatID, progressFn)
	if err != nil {
		svc.metrics.RecordTransferFailed()
		svc.metrics.RecordDownloaderError(consts.DownloaderMock, downloader.Classify(err))
		svc.log.ErrorContext(ctx, "downloader transfer", slog.String("url", rawURL), slog.Any("error", err))

		return entity.DownloadOutcome{}, fmt.Errorf("transfer: %w", err)
	}

	observe()
	svc.metrics.RecordTransferCompleted()

	return outcome, nil
}

// GetTransfer returns a snapshot of a tracked transfer.
func (svc *service) GetTransfer(ctx context.Context, id string) (entity.Transfer, error) {
	return svc.storer.GetTransfer(ctx, id)
}

// GetTransfers returns snapshots of all tracked transfers, oldest first.
func (svc *service) GetTransfers(ctx context.Context) ([]entity.Transfer, error) {
	return svc.storer.GetTransfers(ctx)
}

// CleanupExpired drops finished transfers past their TTL every interval until ctx is done.
func (svc *service) CleanupExpired(ctx context.Context, interval time.Duration) {
	svc.storer.CleanupExpiredTransfers(ctx, interval)
}

// Close stops accepting new transfers and waits for running ones to finish.
func (svc *service) Close() {
	svc.mu.Lock()
	svc.closed = true
	svc.mu.Unlock()

	svc.wg.Wait()
}

func (svc *service) isClosed() bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.closed
}

func (svc *service) ttl() time.Duration {
	if svc.cfg.Transfer.TTL > 0 {
		return svc.cfg.Transfer.TTL
	}

	return consts.DefaultTransferTTL
}
