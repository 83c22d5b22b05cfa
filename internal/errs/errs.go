// Package errs defines common error variables used across the application.
package errs

import "errors"

var (
	// ErrServiceClosed indicates that the service is shutting down and accepts no new transfers.
	ErrServiceClosed = errors.New("service is closed")
	// ErrInvalidRequestBody indicates that the request body is invalid or cannot be parsed.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// Valid request errors.
var (
	// ErrEmptyURL indicates that no URL was provided.
	ErrEmptyURL = errors.New("url is empty")
	// ErrInvalidURL indicates that the URL lacks a recognized host marker.
	ErrInvalidURL = errors.New("url has no recognized host")
	// ErrEmptyFormat indicates that no format id was provided.
	ErrEmptyFormat = errors.New("format is empty")
	// ErrUnknownFormat indicates that the format id is not offered for the video.
	ErrUnknownFormat = errors.New("unknown format")
)

// Resolver and transfer errors.
var (
	// ErrResolveFailed is the catch-all for metadata resolution failures.
	ErrResolveFailed = errors.New("resolve failed")
	// ErrTransferFailed is the catch-all for transfer failures.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrFixtureInvalid indicates that the metadata fixture cannot be used.
	ErrFixtureInvalid = errors.New("fixture is invalid")
)

// Tracked transfer errors.
var (
	// ErrNoTransfers indicates that no transfers are tracked.
	ErrNoTransfers = errors.New("no transfers")
	// ErrTransferNotFound indicates that the transfer is not tracked.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrTransferIDEmpty indicates that the transfer id is empty.
	ErrTransferIDEmpty = errors.New("transfer id is empty")
)

// ErrInvalidTransition indicates a page state change that is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid state transition")
