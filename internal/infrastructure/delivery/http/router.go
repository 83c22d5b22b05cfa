// Package httprouter wires the page and API handlers onto a ServeMux.
package httprouter

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"vidpeek/internal/config"
	"vidpeek/internal/infrastructure/delivery/http/middleware"
	"vidpeek/internal/infrastructure/delivery/http/view"
	"vidpeek/internal/observability"
	"vidpeek/internal/service"
)

type chain []func(http.Handler) http.Handler

func (c chain) then(h http.Handler) http.Handler {
	for _, mw := range slices.Backward(c) {
		h = mw(h)
	}

	return h
}

type Router struct {
	*http.ServeMux
	log         *slog.Logger
	globalChain chain
	routeChain  chain
	isSubRouter bool

	cfg     *config.Config
	svc     service.Service
	metrics *observability.Metrics
	view    *view.Renderer
}

func New(log *slog.Logger, cfg *config.Config, svc service.Service, metrics *observability.Metrics) (*Router, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("view new: %w", err)
	}

	r := &Router{
		ServeMux: http.NewServeMux(),
		log:      log.With(slog.String("package", "httprouter")),
		cfg:      cfg,
		svc:      svc,
		metrics:  metrics,
		view:     renderer,
	}

	r.SetGlobalMiddlewares()
	r.SetRoutes()

	return r, nil
}

func (r *Router) Use(middleware ...func(http.Handler) http.Handler) {
	if r.isSubRouter {
		r.routeChain = append(r.routeChain, middleware...)
	} else {
		r.globalChain = append(r.globalChain, middleware...)
	}
}

// Group registers routes that share the middlewares added inside fn.
func (r *Router) Group(fn func(r *Router)) {
	subRouter := &Router{
		isSubRouter: true,
		routeChain:  slices.Clone(r.routeChain),
		ServeMux:    r.ServeMux,
	}

	fn(subRouter)
}

func (r *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	r.Handle(pattern, h)
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.ServeMux.Handle(pattern, r.routeChain.then(h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.globalChain.then(r.ServeMux).ServeHTTP(w, req)
}

func (r *Router) SetGlobalMiddlewares() {
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.Logger,
		middleware.Metrics(r.metrics),
	)
}

func (r *Router) SetRoutes() {
	r.SetRoutesPage()
	r.SetRoutesHealthcheck()
	r.SetRoutesResolve()
	r.SetRoutesTransfers()
	r.SetRoutesMetrics()
}

func (r *Router) SetRoutesPage() {
	r.Group(func(page *Router) {
		page.Use(noStore)

		page.HandleFunc("GET /{$}", r.Index)
		page.HandleFunc("POST /{$}", r.Lookup)
		page.HandleFunc("POST /download", r.Download)
	})

	r.Handle("GET /placeholder.svg", http.FileServerFS(view.Static()))
}

func (r *Router) SetRoutesHealthcheck() {
	r.HandleFunc("GET /v1/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func (r *Router) SetRoutesResolve() {
	r.HandleFunc("POST /v1/resolve", r.Resolve)
}

// SetRoutesTransfers registers full patterns on the root mux so metrics see the matched route.
func (r *Router) SetRoutesTransfers() {
	r.HandleFunc("POST /v1/transfers/{$}", r.StartTransfer)
	r.HandleFunc("GET /v1/transfers/{$}", r.GetTransfers)
	r.HandleFunc("GET /v1/transfers/{id}", r.GetTransfer)
}

func (r *Router) SetRoutesMetrics() {
	r.Handle("GET /metrics", r.metrics.Handler())
}

// noStore keeps browsers from caching pages that carry per-request state.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
