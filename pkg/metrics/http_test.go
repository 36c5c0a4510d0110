package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveRequest(t *testing.T) {
	m := NewHTTPMetrics()
	m.ObserveRequest("GET", "/products", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/products", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", "", 500, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `http_requests_total{method="GET",route="/products",status="200"} 2`) {
		t.Fatalf("request counter missing:\n%s", body)
	}
	if !strings.Contains(body, `route="unknown"`) {
		t.Fatalf("empty route should normalize to unknown:\n%s", body)
	}
	if !strings.Contains(body, "http_request_duration_seconds_count") {
		t.Fatalf("duration histogram missing:\n%s", body)
	}
}

func TestTrackInFlight(t *testing.T) {
	m := NewHTTPMetrics()
	done := m.TrackInFlight()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "http_requests_in_flight 1") {
		t.Fatalf("expected one in-flight request:\n%s", rec.Body.String())
	}

	done()
	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "http_requests_in_flight 0") {
		t.Fatalf("expected zero in-flight requests:\n%s", rec.Body.String())
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/x", 200, time.Second)
	m.TrackInFlight()()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("nil metrics handler should 404, got %d", rec.Code)
	}
}
