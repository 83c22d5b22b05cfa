// Package urls provides utility functions for working with URLs.
package urls

import (
	"net/url"
	"strings"
)

// Normalize trims spaces and lowercases the scheme and host of an absolute URL.
// Input that is not an absolute URL comes back trimmed and otherwise untouched.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	return u.String()
}
