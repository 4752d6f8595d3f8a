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
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// System endpoints served outside the middleware chain.
const (
	pathRoot    = "/"
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathMetrics = "/metrics"
)

// RootResponse is returned by the default root handler.
type RootResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Ready     bool     `json:"ready"`
	Timestamp string   `json:"timestamp"`
	Routes    []string `json:"routes"`
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc(pathHealth, s.handleHealth)
	mux.HandleFunc(pathReady, s.handleReady)
	mux.Handle(pathMetrics, promhttp.Handler())

	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(path, handler))
	}

	return mux
}

// routes returns the registered paths in sorted order, system endpoints included.
func (s *Server) routes() []string {
	list := []string{pathHealth, pathReady, pathMetrics}
	for path := range s.config.Handlers {
		if path == pathRoot {
			continue
		}
		list = append(list, path)
	}
	sort.Strings(list)
	return list
}

// handleDefault lists server identity and routes on GET /.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	if r.URL.Path != pathRoot {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": r.URL.Path})
		return
	}

	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
