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

// Package api implements craftd, the crafting HTTP service.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/craftgrid/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Loading the item catalog and the initial recipe collection
//   - Setting up route handlers over a store.Store
//   - Reloading the collection on SIGHUP or POST /v1/reload
//   - Reporting lifecycle to systemd through sd_notify when available
//
// Server lifecycle, middleware and probes are delegated to pkg/server.
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - POST /v1/offer   - What the posted grid would craft; the grid is not changed
//   - POST /v1/craft   - Craft from the posted grid; returns the remaining grid
//   - GET  /v1/recipes - Active recipe collection
//   - POST /v1/reload  - Reload the collection from its source
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Grid Bodies
//
// Offer and craft accept a grid.Layout as JSON, or as YAML when the
// Content-Type is application/yaml:
//
//	{"width": 2, "height": 2, "cells": [{"item": "planks"}, null, {"item": "planks"}]}
//
// # Configuration
//
// Environment variables:
//   - CRAFT_RECIPES: recipe definition source (file, http(s), cm://, oci://), default crafting.txt
//   - CRAFT_ITEMS: optional item catalog YAML replacing the embedded one
//   - KUBECONFIG: kubeconfig used for cm:// sources
//   - CRAFT_RATE_LIMIT, CRAFT_RATE_LIMIT_BURST: admitted requests per second and burst (default 100/200)
//   - PORT, SHUTDOWN_TIMEOUT_SECONDS, LOG_LEVEL: see pkg/server and pkg/logging
package api
