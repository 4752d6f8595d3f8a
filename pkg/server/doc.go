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

// Package server provides the generic HTTP server used by craftd.
//
// The server owns process-level concerns only: routing of caller supplied
// handlers, rate limiting, request ID tracking, panic recovery, metrics,
// health probes and graceful shutdown. Domain handlers live elsewhere and
// are registered with WithHandler.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("craftd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/offer": api.handleOffer,
//	    }),
//	)
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//
// Configuration defaults come from NewConfig and may be overridden with the
// PORT and SHUTDOWN_TIMEOUT_SECONDS environment variables.
//
// # Endpoints
//
// Every server exposes:
//
//	GET /          - name, version, readiness and registered routes
//	GET /health    - liveness probe, always 200 while the process runs
//	GET /ready     - readiness probe, 503 until Start and after Shutdown
//	GET /metrics   - Prometheus metrics
//
// Registered handlers are wrapped in the middleware chain; the system
// endpoints above are not rate limited.
//
// # Observability
//
// Requests accept an optional X-Request-Id header in UUID format. Invalid or
// missing IDs are replaced with a generated one, echoed in the response
// header and included in every error body.
//
// Rate limited responses return 429 with a Retry-After header. Successful
// responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset.
//
// # Error Handling
//
// Errors use a consistent JSON body:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "grid layout is invalid",
//	  "details": {"error": "width must be positive"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-12T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps pkg/errors codes to HTTP status codes.
package server
