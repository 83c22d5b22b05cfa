package httprouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"vidpeek/internal/consts"
	"vidpeek/internal/errs"
	"vidpeek/internal/infrastructure/delivery/http/request"
	"vidpeek/internal/infrastructure/delivery/http/response"
	"vidpeek/internal/service"
)

func (ro *Router) Resolve(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "Resolve")

	ctx, cancel := context.WithTimeout(r.Context(), ro.handlerTimeout())
	defer cancel()

	var in request.Resolve
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.ErrorContext(ctx, consts.RespInvalidRequestBody, slog.Any("error", err))
		response.BadRequest(w, consts.RespInvalidRequestBody, errs.ErrInvalidRequestBody)

		return
	}

	if err := in.Validate(); err != nil {
		log.DebugContext(ctx, "resolve request invalid", slog.Any("error", err))
		response.UnprocessableEntity(w, service.ResolveMessage(err), err)

		return
	}

	meta, err := ro.svc.Resolve(ctx, in.URL)

	switch {
	case errors.Is(err, errs.ErrEmptyURL), errors.Is(err, errs.ErrInvalidURL):
		log.DebugContext(ctx, "resolve rejected", slog.Any("error", err))
		response.UnprocessableEntity(w, service.ResolveMessage(err), err)

		return
	case err != nil:
		log.ErrorContext(ctx, "resolve", slog.Any("error", err))
		response.InternalServerError(w, service.ResolveMessage(err), nil, err)

		return
	}

	response.OK(w, consts.RespVideoResolved, meta, nil)
}

func (ro *Router) StartTransfer(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "StartTransfer")
	ctx := r.Context()

	var in request.Transfer
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.ErrorContext(ctx, consts.RespInvalidRequestBody, slog.Any("error", err))
		response.BadRequest(w, consts.RespInvalidRequestBody, errs.ErrInvalidRequestBody)

		return
	}

	if err := in.Validate(); err != nil {
		log.DebugContext(ctx, "transfer request invalid", slog.Any("error", err))
		response.UnprocessableEntity(w, consts.RespTransferStartFail, err)

		return
	}

	tr, err := ro.svc.StartTransfer(ctx, in.URL, in.Format)

	switch {
	case errors.Is(err, errs.ErrServiceClosed):
		log.WarnContext(ctx, consts.RespTransferStartFail, slog.Any("error", err))
		response.ServiceUnavailable(w, consts.RespTransferStartFail, err)

		return
	case errors.Is(err, errs.ErrEmptyURL), errors.Is(err, errs.ErrEmptyFormat),
		errors.Is(err, errs.ErrInvalidURL), errors.Is(err, errs.ErrUnknownFormat):
		log.DebugContext(ctx, "transfer request rejected", slog.Any("error", err))
		response.UnprocessableEntity(w, consts.RespTransferStartFail, err)

		return
	case err != nil:
		log.ErrorContext(ctx, consts.RespTransferStartFail, slog.Any("error", err))
		response.InternalServerError(w, consts.RespTransferStartFail, nil, err)

		return
	}

	log.InfoContext(ctx, consts.RespTransferStarted, slog.String("id", tr.ID))

	response.Accepted(w, consts.RespTransferStarted, tr, nil)
}

func (ro *Router) GetTransfer(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "GetTransfer")

	ctx, cancel := context.WithTimeout(r.Context(), ro.handlerTimeout())
	defer cancel()

	id := r.PathValue("id")
	if id == "" {
		log.ErrorContext(ctx, consts.RespQueryParamMissing)
		response.BadRequest(w, consts.RespQueryParamMissing, errs.ErrTransferIDEmpty)

		return
	}

	tr, err := ro.svc.GetTransfer(ctx, id)
	if errors.Is(err, errs.ErrTransferNotFound) {
		log.DebugContext(ctx, consts.RespTransferNotFound, slog.String("id", id))
		response.NotFound(w, consts.RespTransferNotFound, err)

		return
	}

	if err != nil {
		log.ErrorContext(ctx, "get transfer", slog.Any("error", err))
		response.InternalServerError(w, consts.RespTransferNotFound, nil, err)

		return
	}

	response.OK(w, consts.RespTransferRetrieved, tr, nil)
}

func (ro *Router) GetTransfers(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "GetTransfers")

	ctx, cancel := context.WithTimeout(r.Context(), ro.handlerTimeout())
	defer cancel()

	transfers, err := ro.svc.GetTransfers(ctx)
	if errors.Is(err, errs.ErrNoTransfers) {
		log.DebugContext(ctx, consts.RespNoTransfers)
		response.NoContent(w)

		return
	}

	if err != nil {
		log.ErrorContext(ctx, "get transfers", slog.Any("error", err))
		response.InternalServerError(w, consts.RespNoTransfers, nil, err)

		return
	}

	response.OK(w, consts.RespTransfersRetrieved, transfers, nil)
}

func (ro *Router) handlerTimeout() time.Duration {
	if ro.cfg != nil && ro.cfg.HTTP.HandlerTimeout > 0 {
		return ro.cfg.HTTP.HandlerTimeout
	}

	return consts.DefaultHandlerTimeout
}
