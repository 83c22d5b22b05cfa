// Package downloader defines the transfer interface and its simulated implementation.
package downloader

import (
	"context"
	"errors"

	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
)

// ProgressFunc receives status changes and progress percentages while a transfer runs.
type ProgressFunc func(ctx context.Context, status entity.TransferStatus, progress int)

// Downloader defines the interface for transferring a video in a chosen format.
type Downloader interface {
	Transfer(ctx context.Context, url, formatID string, progressFn ProgressFunc) (entity.DownloadOutcome, error)
}

// Classify returns a short error kind suitable for metric labels.
func Classify(err error) string {
	switch {
	case errors.Is(err, errs.ErrEmptyURL), errors.Is(err, errs.ErrEmptyFormat):
		return "validation"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "process"
	}
}
