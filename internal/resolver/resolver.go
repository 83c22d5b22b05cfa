// Package resolver turns a video URL into descriptive metadata and a list of download formats.
package resolver

import (
	"context"
	"strings"

	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
)

// Resolver defines the interface for resolving video metadata from a request.
type Resolver interface {
	Resolve(ctx context.Context, req entity.VideoRequest) (entity.VideoMetadata, error)
}

// Validate checks the superficial shape of a URL: it must be non-empty
// and contain at least one of the host markers.
func Validate(rawURL string, markers []string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return errs.ErrEmptyURL
	}

	lower := strings.ToLower(rawURL)
	for _, marker := range markers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return nil
		}
	}

	return errs.ErrInvalidURL
}
