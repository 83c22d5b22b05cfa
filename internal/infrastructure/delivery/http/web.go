package httprouter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"vidpeek/internal/errs"
	"vidpeek/internal/page"
	"vidpeek/internal/service"
	"vidpeek/pkg/ptr"
)

func (ro *Router) Index(w http.ResponseWriter, r *http.Request) {
	ro.render(w, r, page.New())
}

// Lookup resolves the submitted URL and shows either the preview or a single error.
func (ro *Router) Lookup(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "Lookup")

	ctx, cancel := context.WithTimeout(r.Context(), ro.handlerTimeout())
	defer cancel()

	v, err := page.New().Submit(strings.TrimSpace(r.PostFormValue("url")))
	if err != nil {
		log.ErrorContext(ctx, "page submit", slog.Any("error", err))
		ro.render(w, r, page.New())

		return
	}

	v = ro.resolveInto(ctx, log, v)

	ro.render(w, r, v)
}

// Download resolves the URL again, runs the transfer for the chosen format and shows
// the outcome next to the preview.
func (ro *Router) Download(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "Download")

	ctx, cancel := context.WithTimeout(r.Context(), ro.handlerTimeout())
	defer cancel()

	format := strings.TrimSpace(r.PostFormValue("format"))

	v, err := page.New().Submit(strings.TrimSpace(r.PostFormValue("url")))
	if err != nil {
		log.ErrorContext(ctx, "page submit", slog.Any("error", err))
		ro.render(w, r, page.New())

		return
	}

	v = ro.resolveInto(ctx, log, v)
	if v.Metadata == nil {
		ro.render(w, r, v)

		return
	}

	v, err = v.StartDownload(format)
	if err != nil {
		log.ErrorContext(ctx, "page start download", slog.Any("error", err))
		ro.render(w, r, v)

		return
	}

	failMsg := ""

	if _, ok := ptr.Deref(v.Metadata).Format(format); !ok {
		err := fmt.Errorf("%w: %q", errs.ErrUnknownFormat, format)
		log.WarnContext(ctx, "download", slog.Any("error", err))

		failMsg = service.TransferMessage(err)
	} else if _, err := ro.svc.Download(ctx, v.URL, format); err != nil {
		failMsg = service.TransferMessage(err)
	}

	next, err := v.FinishDownload(failMsg)
	if err != nil {
		log.ErrorContext(ctx, "page finish download", slog.Any("error", err))
	} else {
		v = next
	}

	ro.render(w, r, v)
}

// resolveInto moves a resolving view to its resolved or error state.
func (ro *Router) resolveInto(ctx context.Context, log *slog.Logger, v page.View) page.View {
	meta, err := ro.svc.Resolve(ctx, v.URL)

	var next page.View
	if err != nil {
		log.DebugContext(ctx, "resolve", slog.String("url", v.URL), slog.Any("error", err))
		next, err = v.Fail(service.ResolveMessage(err))
	} else {
		next, err = v.Resolve(meta)
	}

	if err != nil {
		log.ErrorContext(ctx, "page transition", slog.Any("error", err))

		return v
	}

	return next
}

func (ro *Router) render(w http.ResponseWriter, r *http.Request, v page.View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := ro.view.Render(w, v); err != nil {
		ro.log.ErrorContext(r.Context(), "render page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
