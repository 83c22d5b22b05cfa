package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"vidpeek/internal/observability"
)

func TestRecordResolve(t *testing.T) {
	m := observability.New(prometheus.NewRegistry())

	m.RecordResolve(observability.ResolveResultOK)
	m.RecordResolve(observability.ResolveResultOK)
	m.RecordResolve(observability.ResolveResultInvalidURL)

	if got := testutil.ToFloat64(m.ResolvesTotal.WithLabelValues(observability.ResolveResultOK)); got != 2 {
		t.Errorf("got %v ok resolves, want 2", got)
	}

	if got := testutil.ToFloat64(m.ResolvesTotal.WithLabelValues(observability.ResolveResultInvalidURL)); got != 1 {
		t.Errorf("got %v invalid resolves, want 1", got)
	}
}

func TestTransferGauge(t *testing.T) {
	m := observability.New(nil)

	m.RecordTransferStarted()
	m.RecordTransferStarted()
	m.RecordTransferCompleted()

	if got := testutil.ToFloat64(m.TransfersInFlight); got != 1 {
		t.Errorf("got %v in flight, want 1", got)
	}

	m.RecordTransferFailed()

	if got := testutil.ToFloat64(m.TransfersInFlight); got != 0 {
		t.Errorf("got %v in flight, want 0", got)
	}

	if got := testutil.ToFloat64(m.TransfersFailed); got != 1 {
		t.Errorf("got %v failed, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *observability.Metrics

	// none of these may panic
	m.RecordResolve(observability.ResolveResultOK)
	m.RecordTransferStarted()
	m.RecordTransferCompleted()
	m.RecordTransferFailed()
	m.RecordCleanup(3)
	m.SetTrackedTransfers(1)
	m.RecordDownloaderError("mock", "process")
	m.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond, 10)
	m.ResolveTimer()()
	m.TransferTimer()()
}

func TestHandler(t *testing.T) {
	m := observability.New(prometheus.NewRegistry())
	m.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond, 128)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), `vidpeek_http_requests_total{method="GET",path="/",status="200"} 1`) {
		t.Errorf("metrics output missing http request counter:\n%s", body)
	}
}
