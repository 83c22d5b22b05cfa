// Package entity defines the core entities used in the application.
package entity

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// VideoRequest is a URL submitted for resolution.
type VideoRequest struct {
	URL string `json:"url"`
}

// FormatOption is one selectable quality/container choice.
type FormatOption struct {
	Label              string `json:"label"              yaml:"label"`
	Value              string `json:"value"              yaml:"value"`
	EstimatedSizeBytes int64  `json:"estimatedSizeBytes" yaml:"estimated_size_bytes"`
}

// Size renders the estimated size in decimal units, e.g. "15 MB".
func (f FormatOption) Size() string {
	n := max(f.EstimatedSizeBytes, 0)

	// humanize keeps one decimal below 10 units; whole values read better without it
	return strings.Replace(humanize.Bytes(uint64(n)), ".0 ", " ", 1)
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (f FormatOption) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("label", f.Label),
		slog.String("value", f.Value),
		slog.Int64("estimated_size_bytes", f.EstimatedSizeBytes),
	)
}

// VideoMetadata describes a resolved video and the formats it can be downloaded in.
type VideoMetadata struct {
	Title        string         `json:"title"        yaml:"title"`
	ThumbnailRef string         `json:"thumbnailRef" yaml:"thumbnail_ref"`
	Duration     string         `json:"duration"     yaml:"duration"` // mm:ss
	Author       string         `json:"author"       yaml:"author"`
	Formats      []FormatOption `json:"formats"      yaml:"formats"`
}

// Clone returns a copy that shares no memory with m.
func (m VideoMetadata) Clone() VideoMetadata {
	m.Formats = slices.Clone(m.Formats)

	return m
}

// Format looks up a format option by its value.
func (m VideoMetadata) Format(value string) (FormatOption, bool) {
	idx := slices.IndexFunc(m.Formats, func(f FormatOption) bool { return f.Value == value })
	if idx < 0 {
		return FormatOption{}, false
	}

	return m.Formats[idx], true
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (m VideoMetadata) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("title", m.Title),
		slog.String("duration", m.Duration),
		slog.String("author", m.Author),
		slog.Int("formats", len(m.Formats)),
	)
}

// DownloadOutcome carries no payload; success or failure is the accompanying error.
type DownloadOutcome struct{}

// TransferStatus represents the status of a transfer.
type TransferStatus string

const (
	// TransferStatusIdle indicates that the transfer is registered but not started.
	TransferStatusIdle TransferStatus = "idle"
	// TransferStatusInFlight indicates that the simulated delay is running.
	TransferStatusInFlight TransferStatus = "in_flight"
	// TransferStatusCompleted indicates that the transfer finished successfully.
	TransferStatusCompleted TransferStatus = "completed"
	// TransferStatusFailed indicates that the transfer failed.
	TransferStatusFailed TransferStatus = "failed"
)

// Terminal reports whether no further status change can happen.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusFailed
}

// Transfer is a background transfer tracked for status polling.
type Transfer struct {
	ID        string         `json:"id"`
	URL       string         `json:"url"`
	Format    string         `json:"format"`
	Status    TransferStatus `json:"status"`
	Progress  int            `json:"progress"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (t Transfer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", t.ID),
		slog.String("url", t.URL),
		slog.String("format", t.Format),
		slog.String("status", string(t.Status)),
		slog.Int("progress", t.Progress),
	)
}
