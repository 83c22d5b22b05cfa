// Package consts defines application-wide constants.
package consts

import "time"

const (
	// DefaultHandlerTimeout is the default timeout for HTTP handlers.
	DefaultHandlerTimeout = 30 * time.Second
	// DefaultTransferTTL is the default time-to-live for tracked transfers.
	DefaultTransferTTL = time.Hour
)

// User-visible messages. These are the only error texts shown on the page.
const (
	// MsgEmptyURL is shown when the form is submitted without a URL.
	MsgEmptyURL = "Please enter a YouTube URL"
	// MsgInvalidURL is shown when the URL has no recognized host.
	MsgInvalidURL = "Please enter a valid YouTube URL"
	// MsgResolveFailed is shown when metadata cannot be fetched.
	MsgResolveFailed = "Failed to fetch video information. Please check the URL and try again."
	// MsgTransferFailed is shown when a download fails.
	MsgTransferFailed = "Download failed. Please try again."
	// MsgTransferCompleted is shown after a successful download.
	MsgTransferCompleted = "Download completed"
)

// HTTP response messages.
const (
	// RespInvalidRequestBody is returned when the request body is invalid.
	RespInvalidRequestBody = "invalid request body"
	// RespQueryParamMissing is returned when a required path or query parameter is missing.
	RespQueryParamMissing = "query param missing or invalid"
	// RespVideoResolved is returned when metadata is resolved.
	RespVideoResolved = "video resolved"
	// RespTransferStarted is returned when a tracked transfer is started.
	RespTransferStarted = "transfer started"
	// RespTransferStartFail is returned when a tracked transfer cannot be started.
	RespTransferStartFail = "transfer start failed"
	// RespTransferRetrieved is returned when a transfer is retrieved.
	RespTransferRetrieved = "transfer retrieved"
	// RespTransfersRetrieved is returned when transfers are retrieved.
	RespTransfersRetrieved = "transfers retrieved"
	// RespTransferNotFound is returned when a transfer is not found.
	RespTransferNotFound = "transfer not found"
	// RespNoTransfers is returned when no transfers are tracked.
	RespNoTransfers = "no transfers"
)

// Component identifiers.
const (
	// ResolverMock is the fixed-fixture resolver identifier.
	ResolverMock = "mock"
	// DownloaderMock is the simulated downloader identifier.
	DownloaderMock = "mock"
)
