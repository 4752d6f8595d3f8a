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
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craft_http_requests_total",
			Help: "HTTP requests by route, method and status class (2xx, 4xx, 5xx).",
		},
		[]string{"route", "method", "class"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "craft_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		},
		[]string{"route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "craft_http_response_size_bytes",
			Help:    "HTTP response body size by route.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 7),
		},
		[]string{"route"},
	)

	httpInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "craft_http_requests_in_flight",
			Help: "HTTP requests being served by route.",
		},
		[]string{"route"},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craft_http_rate_limit_rejects_total",
			Help: "Requests rejected by the rate limiter.",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craft_http_panic_recoveries_total",
			Help: "Handler panics turned into 500 responses.",
		},
	)
)

// routeMetrics holds the collectors of one registered route.
type routeMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Observer
	size     prometheus.Observer
	inFlight prometheus.Gauge
}

func newRouteMetrics(route string) *routeMetrics {
	labels := prometheus.Labels{"route": route}
	return &routeMetrics{
		requests: httpRequests.MustCurryWith(labels),
		duration: httpDuration.With(labels),
		size:     httpResponseSize.With(labels),
		inFlight: httpInFlight.With(labels),
	}
}

// statusClass maps a status code to "1xx".."5xx".
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// metricsMiddleware instruments a handler under its registered route, so
// raw URLs never become label values.
func (s *Server) metricsMiddleware(route string, next http.HandlerFunc) http.HandlerFunc {
	m := newRouteMetrics(route)
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		m.requests.WithLabelValues(r.Method, statusClass(wrapped.Status())).Inc()
		m.duration.Observe(time.Since(start).Seconds())
		m.size.Observe(float64(wrapped.Size()))
	}
}
