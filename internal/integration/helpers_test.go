//go:build integration

package integration_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vidpeek/internal/config"
	"vidpeek/internal/downloader"
	httprouter "vidpeek/internal/infrastructure/delivery/http"
	"vidpeek/internal/observability"
	"vidpeek/internal/resolver"
	"vidpeek/internal/service"
	"vidpeek/internal/storage"
	httpserver "vidpeek/pkg/http/server"
)

type fixtureOptions struct {
	resolverOpts   []resolver.Option
	downloaderOpts []downloader.Option
}

type httpIntegrationFixture struct {
	cfg    *config.Config
	svc    service.Service
	client *http.Client
	url    string
}

type apiResponse struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// newHTTPIntegrationFixture serves the full stack on a loopback port with short real delays.
func newHTTPIntegrationFixture(t *testing.T, opts fixtureOptions) *httpIntegrationFixture {
	t.Helper()

	t.Setenv("VIDPEEK_RESOLVER_DELAY", "10ms")
	t.Setenv("VIDPEEK_TRANSFER_DELAY", "100ms")
	t.Setenv("VIDPEEK_TRANSFER_SETTLE_DELAY", "20ms")
	t.Setenv("VIDPEEK_TRANSFER_MAX_WAIT", "2s")
	t.Setenv("VIDPEEK_TRANSFER_PROGRESS_INTERVAL", "10ms")

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config new: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.New(prometheus.NewRegistry())

	res, err := resolver.NewMock(log, cfg, opts.resolverOpts...)
	if err != nil {
		t.Fatalf("resolver new mock: %v", err)
	}

	dl := downloader.NewMock(log, cfg, opts.downloaderOpts...)
	svc := service.New(cfg, log, res, dl, storage.New(log, metrics), metrics)

	router, err := httprouter.New(log, cfg, svc, metrics)
	if err != nil {
		t.Fatalf("router new: %v", err)
	}

	srv, err := httpserver.New(router, httpserver.Options{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("http server new: %v", err)
	}

	t.Cleanup(func() {
		if err := srv.Shutdown(); err != nil {
			t.Errorf("shutdown: %v", err)
		}

		svc.Close()
	})

	return &httpIntegrationFixture{
		cfg:    cfg,
		svc:    svc,
		client: &http.Client{Timeout: 5 * time.Second},
		url:    "http://" + srv.Addr(),
	}
}

func (fx *httpIntegrationFixture) do(t *testing.T, method, path, contentType, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, fx.url+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := fx.client.Do(req)
	if err != nil {
		t.Fatalf("do %s %s: %v", method, path, err)
	}

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return string(b)
}

func decodeAPIResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode api response: %v", err)
	}

	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("condition not met within %s", timeout)
}
