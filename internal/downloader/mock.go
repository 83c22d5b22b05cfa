package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidpeek/internal/config"
	"vidpeek/internal/consts"
	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
	"vidpeek/pkg/calc"
)

// lastTickProgress keeps ticks below 100 so that only completion reports 100.
const lastTickProgress = 99

type mock struct {
	log      *slog.Logger
	delay    time.Duration
	interval time.Duration
	failWith error
}

// Option configures the mock downloader.
type Option func(*mock)

// WithDelay overrides the simulated transfer duration.
func WithDelay(d time.Duration) Option {
	return func(m *mock) { m.delay = d }
}

// WithFailure makes every transfer fail with err once the delay has run.
func WithFailure(err error) Option {
	return func(m *mock) { m.failWith = err }
}

// NewMock creates a downloader that waits a fixed delay and produces nothing.
func NewMock(log *slog.Logger, cfg *config.Config, opts ...Option) Downloader {
	m := &mock{
		log:      log.With(slog.String("package", "downloader"), slog.String("downloader", consts.DownloaderMock)),
		delay:    cfg.Transfer.Delay,
		interval: cfg.Transfer.ProgressInterval,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Transfer simulates a download. Once started the delay always runs to completion;
// cancelling ctx does not abort it.
func (m *mock) Transfer(
	ctx context.Context,
	url, formatID string,
	progressFn ProgressFunc,
) (entity.DownloadOutcome, error) {
	if url == "" {
		return entity.DownloadOutcome{}, errs.ErrEmptyURL
	}

	if formatID == "" {
		return entity.DownloadOutcome{}, errs.ErrEmptyFormat
	}

	ctx = context.WithoutCancel(ctx)

	if progressFn == nil {
		progressFn = func(context.Context, entity.TransferStatus, int) {}
	}

	log := m.log.With(slog.String("func", "Transfer"), slog.String("url", url), slog.String("format", formatID))

	log.InfoContext(ctx, "downloading video")
	progressFn(ctx, entity.TransferStatusInFlight, 0)

	simulate(m.delay, m.interval, func(elapsed time.Duration) {
		progress := min(calc.Progress(elapsed, m.delay), lastTickProgress)

		log.DebugContext(ctx, "transfer progress",
			slog.Int("progress", progress),
			slog.Duration("eta", calc.Remaining(elapsed, m.delay)))
		progressFn(ctx, entity.TransferStatusInFlight, progress)
	})

	if m.failWith != nil {
		log.ErrorContext(ctx, "simulate download", slog.Any("error", m.failWith))
		progressFn(ctx, entity.TransferStatusFailed, 0)

		return entity.DownloadOutcome{}, fmt.Errorf("%w: %w", errs.ErrTransferFailed, m.failWith)
	}

	progressFn(ctx, entity.TransferStatusCompleted, 100)

	log.InfoContext(ctx, "download completed")

	return entity.DownloadOutcome{}, nil
}

// simulate blocks for total, calling tick every interval with the time elapsed so far.
func simulate(total, interval time.Duration, tick func(elapsed time.Duration)) {
	if total <= 0 {
		return
	}

	start := time.Now()

	done := time.NewTimer(total)
	defer done.Stop()

	if interval <= 0 {
		<-done.C

		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done.C:
			return
		case <-ticker.C:
			tick(time.Since(start))
		}
	}
}
