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

package defaults

import "time"

// Source timeouts for loading recipe definitions.
const (
	// SourceLoadTimeout bounds a complete definition load, whatever the scheme.
	SourceLoadTimeout = 30 * time.Second

	// ConfigMapReadTimeout is the timeout for reading a definition ConfigMap.
	ConfigMapReadTimeout = 15 * time.Second

	// OCIPullTimeout is the timeout for pulling a definition artifact.
	OCIPullTimeout = 30 * time.Second

	// OCIPushTimeout is the timeout for publishing a definition artifact.
	OCIPushTimeout = 2 * time.Minute
)

// Handler timeouts for HTTP request processing.
const (
	// GridHandlerTimeout is the timeout for offer and craft requests.
	// Matching is bounded and fast; this only guards body reads.
	GridHandlerTimeout = 5 * time.Second

	// ReloadHandlerTimeout is the timeout for a reload request.
	// Must exceed SourceLoadTimeout.
	ReloadHandlerTimeout = 45 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Input limits.
const (
	// MaxSourceBytes is the largest definition source accepted (4 MiB).
	MaxSourceBytes = 4 << 20

	// MaxGridBodyBytes is the largest grid layout request body accepted (64 KiB).
	MaxGridBodyBytes = 64 << 10

	// MaxGridCells is the largest grid (width*height) accepted at the boundary.
	MaxGridCells = 1024
)

// Server listener and admission.
const (
	// ServerPort is the listen port when PORT is unset.
	ServerPort = 8080

	// ServerRateLimit is the steady request rate admitted per second.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the number of requests admitted above the rate.
	ServerRateLimitBurst = 200
)
