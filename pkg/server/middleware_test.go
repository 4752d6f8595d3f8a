// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/time/rate"
)

func newTestServer(limiter *rate.Limiter) *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: limiter,
	}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))
	provided := uuid.New().String()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"generates when missing", "", false},
		{"keeps valid id", provided, true},
		{"replaces invalid id", "invalid-not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = RequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/offer", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected valid UUID, got %q", captured)
			}
			if tt.wantSame && captured != tt.header {
				t.Errorf("expected request ID %s, got %s", tt.header, captured)
			}
			if !tt.wantSame && captured == tt.header {
				t.Errorf("expected request ID to be replaced, got %s", captured)
			}
			if got := rec.Header().Get("X-Request-Id"); got != captured {
				t.Errorf("expected X-Request-Id header %s, got %s", captured, got)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	var captured string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = APIVersion(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	req.Header.Set("Accept", "application/vnd.nvidia.craftgrid.v1+json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if captured != "v1" {
		t.Errorf("expected v1 in context, got %q", captured)
	}
	if rec.Header().Get("X-API-Version") != "v1" {
		t.Errorf("expected X-API-Version v1, got %q", rec.Header().Get("X-API-Version"))
	}
}

func TestRateLimitMiddleware_AllowsRequests(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	called := false
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/recipes", nil))

	if !called {
		t.Error("expected handler to be called")
	}
	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("expected %s header", h)
		}
	}
}

func TestRateLimitMiddleware_RejectsWhenExceeded(t *testing.T) {
	s := newTestServer(rate.NewLimiter(0, 0))

	called := false
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/v1/craft", nil))

	if called {
		t.Error("handler should not be called when rate limited")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header when rate limited")
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Retryable {
		t.Error("expected rate limit error to be retryable")
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	t.Run("recovers panic", func(t *testing.T) {
		handler := s.panicRecoveryMiddleware(func(_ http.ResponseWriter, _ *http.Request) {
			panic("test panic")
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/offer", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
	})

	t.Run("passes normal requests", func(t *testing.T) {
		handler := s.panicRecoveryMiddleware(okHandler)
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/offer", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

func TestLoggingMiddleware_TracksStatusCode(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusBadRequest, http.StatusNotFound} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			handler := s.loggingMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/v1/recipes", nil))

			if rec.Code != status {
				t.Errorf("expected status %d, got %d", status, rec.Code)
			}
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	var hasRequestID bool
	var version string
	handler := s.withMiddleware("/v1/offer", func(w http.ResponseWriter, r *http.Request) {
		hasRequestID = RequestID(r.Context()) != ""
		version = APIVersion(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/v1/offer", nil))

	if !hasRequestID {
		t.Error("expected request ID in context")
	}
	if version != DefaultAPIVersion {
		t.Errorf("expected API version %s, got %s", DefaultAPIVersion, version)
	}

	for _, header := range []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-API-Version"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected header %s to be set", header)
		}
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusTeapot)

	if rw.Status() != http.StatusAccepted {
		t.Errorf("expected status 202, got %d", rw.Status())
	}
	if rec.Code != http.StatusAccepted {
		t.Errorf("expected recorded status 202, got %d", rec.Code)
	}
}

func TestResponseWriter_CountsBodyBytes(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())

	_, _ = rw.Write([]byte("stick"))
	_, _ = rw.Write([]byte(" x4"))

	if rw.Size() != 8 {
		t.Errorf("expected 8 bytes, got %d", rw.Size())
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("expected implicit status 200, got %d", rw.Status())
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusOK, "2xx"},
		{http.StatusNoContent, "2xx"},
		{http.StatusNotFound, "4xx"},
		{http.StatusTooManyRequests, "4xx"},
		{http.StatusServiceUnavailable, "5xx"},
		{0, "unknown"},
		{999, "unknown"},
	}

	for _, tt := range tests {
		if got := statusClass(tt.code); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	s := newTestServer(rate.NewLimiter(rate.Inf, 1))
	const route = "/v1/metrics-route"

	h := s.metricsMiddleware(route, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(route, http.MethodPost, "4xx"))
	for range 3 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, route+"?grid=raw", nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues(route, http.MethodPost, "4xx"))

	if after-before != 3 {
		t.Errorf("expected 3 requests counted under %s, got %v", route, after-before)
	}
	if v := testutil.ToFloat64(httpInFlight.WithLabelValues(route)); v != 0 {
		t.Errorf("expected no requests in flight, got %v", v)
	}
}
