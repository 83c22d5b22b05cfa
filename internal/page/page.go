// Package page models the state of the downloader page as an explicit state machine.
// Transitions return the next View and leave the receiver untouched.
package page

import (
	"fmt"

	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
	"vidpeek/pkg/ptr"
)

// State is the state of the resolve flow.
type State string

const (
	// StateIdle is the initial page with an empty form.
	StateIdle State = "idle"
	// StateResolving is shown while metadata is being fetched.
	StateResolving State = "resolving"
	// StateResolved shows metadata and download options.
	StateResolved State = "resolved"
	// StateError shows a single error message.
	StateError State = "error"
)

// View is everything the renderer needs to draw the page. Metadata is set only in
// StateResolved and Error only in StateError.
type View struct {
	State    State
	URL      string
	Metadata *entity.VideoMetadata
	Error    string

	Transfer entity.TransferStatus
	// Format is the format of the current or last download.
	Format string
}

// New returns the idle page.
func New() View {
	return View{State: StateIdle, Transfer: entity.TransferStatusIdle}
}

// Submit starts resolving url. Allowed from any state; a download in flight blocks it.
func (v View) Submit(url string) (View, error) {
	if v.Transfer == entity.TransferStatusInFlight {
		return v, transitionErr(v, "submit")
	}

	return View{
		State:    StateResolving,
		URL:      url,
		Transfer: entity.TransferStatusIdle,
	}, nil
}

// Resolve shows meta. Only allowed while resolving.
func (v View) Resolve(meta entity.VideoMetadata) (View, error) {
	if v.State != StateResolving {
		return v, transitionErr(v, "resolve")
	}

	v.State = StateResolved
	v.Metadata = ptr.Of(meta.Clone())
	v.Error = ""

	return v, nil
}

// Fail replaces the page with msg and drops any metadata.
func (v View) Fail(msg string) (View, error) {
	if v.Transfer == entity.TransferStatusInFlight {
		return v, transitionErr(v, "fail")
	}

	return View{
		State:    StateError,
		URL:      v.URL,
		Error:    msg,
		Transfer: entity.TransferStatusIdle,
	}, nil
}

// StartDownload marks a download of format as in flight. Only allowed once resolved
// and while no other download runs.
func (v View) StartDownload(format string) (View, error) {
	if v.Metadata == nil || v.Transfer == entity.TransferStatusInFlight {
		return v, transitionErr(v, "start download")
	}

	v.Transfer = entity.TransferStatusInFlight
	v.Format = format

	return v, nil
}

// FinishDownload ends the download in flight. A non-empty failMsg replaces the page
// with that message, the same way Fail does.
func (v View) FinishDownload(failMsg string) (View, error) {
	if v.Transfer != entity.TransferStatusInFlight {
		return v, transitionErr(v, "finish download")
	}

	if failMsg == "" {
		v.Transfer = entity.TransferStatusCompleted

		return v, nil
	}

	return View{
		State:    StateError,
		URL:      v.URL,
		Error:    failMsg,
		Transfer: entity.TransferStatusFailed,
		Format:   v.Format,
	}, nil
}

// Loading reports whether the resolve button should show its spinner.
func (v View) Loading() bool { return v.State == StateResolving }

// Downloading reports whether download buttons are disabled.
func (v View) Downloading() bool { return v.Transfer == entity.TransferStatusInFlight }

// Completed reports whether the last download finished successfully.
func (v View) Completed() bool { return v.Transfer == entity.TransferStatusCompleted }

// ShowHowTo reports whether the usage instructions are shown.
func (v View) ShowHowTo() bool { return v.Metadata == nil && !v.Loading() }

func transitionErr(v View, action string) error {
	return fmt.Errorf("%w: %s from %s (transfer %s)", errs.ErrInvalidTransition, action, v.State, v.Transfer)
}
