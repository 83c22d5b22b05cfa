// Package request defines the JSON request bodies accepted by the API.
package request

import (
	"strings"

	"vidpeek/internal/errs"
)

// Resolve is the body of a metadata lookup.
type Resolve struct {
	URL string `json:"url"`
}

// Validate trims the URL and rejects an empty one.
func (r *Resolve) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return errs.ErrEmptyURL
	}

	return nil
}

// Transfer is the body of a tracked transfer request.
type Transfer struct {
	URL    string `json:"url"`
	Format string `json:"format"` // a format value from a prior resolve, e.g. "720p" or "mp3"
}

// Validate trims both fields and rejects empty ones.
func (t *Transfer) Validate() error {
	t.URL = strings.TrimSpace(t.URL)
	if t.URL == "" {
		return errs.ErrEmptyURL
	}

	t.Format = strings.TrimSpace(t.Format)
	if t.Format == "" {
		return errs.ErrEmptyFormat
	}

	return nil
}
