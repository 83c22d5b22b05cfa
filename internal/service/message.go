package service

import (
	"errors"

	"vidpeek/internal/consts"
	"vidpeek/internal/errs"
)

// ResolveMessage maps a resolve error to the single text shown to the user.
func ResolveMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errs.ErrEmptyURL):
		return consts.MsgEmptyURL
	case errors.Is(err, errs.ErrInvalidURL):
		return consts.MsgInvalidURL
	default:
		return consts.MsgResolveFailed
	}
}

// TransferMessage maps a transfer error to the single text shown to the user.
func TransferMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errs.ErrEmptyURL):
		return consts.MsgEmptyURL
	default:
		return consts.MsgTransferFailed
	}
}
