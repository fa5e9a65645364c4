// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()

		var seen, user string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logging.RequestIDFromContext(r.Context())
			user = logging.UserIDFromContext(r.Context())
			if logging.CorrelationIDFromContext(r.Context()) == "" {
				t.Error("correlation id missing from context")
			}
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotes/random?userId=u7", nil))

		if seen == "" {
			t.Fatal("request id missing from context")
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("response header = %q, context = %q", rec.Header().Get(RequestIDHeader), seen)
		}
		if user != "u7" {
			t.Errorf("user id = %q, want u7", user)
		}
	})

	t.Run("reuses upstream id", func(t *testing.T) {
		t.Parallel()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "upstream-1" {
			t.Errorf("X-Request-ID = %q, want upstream-1", got)
		}
	})
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/mwtest/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/mwtest/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mwtest/"+id, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d, want 418", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("api_requests_total delta = %v, want 3", got)
	}
}

func TestStatusRecorder_FirstWriteWins(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want 404", rec.statusCode)
	}
	if rec.Unwrap() == nil {
		t.Error("Unwrap() should expose the underlying writer")
	}
}

func TestStatusRecorder_HijackUnsupported(t *testing.T) {
	t.Parallel()

	// httptest.ResponseRecorder is not a Hijacker.
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	if _, _, err := rec.Hijack(); err == nil {
		t.Error("Hijack() on a non-hijackable writer should fail")
	}
	if rec.wroteHeader {
		t.Error("failed Hijack() must not record a status")
	}
}

// AccessLog writes through the global logger, so this test is not parallel.
func TestAccessLog_WarnsOnSlowRequest(t *testing.T) {
	previous := logging.Logger()
	defer logging.SetLogger(previous)

	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))

	handler := RequestID(AccessLog(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/collections", nil))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"slow":true`, `"status":201`, `"request_id":`} {
		if !strings.Contains(out, want) {
			t.Errorf("access log missing %s: %s", want, out)
		}
	}
}
