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

package api

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/grid"
	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/serializer"
	"github.com/NVIDIA/craftgrid/pkg/server"
	"github.com/NVIDIA/craftgrid/pkg/store"
)

// Handler serves the crafting endpoints over one store.
type Handler struct {
	store   *store.Store
	names   *item.Registry
	source  string
	version string

	// reloads are serialized; readers never wait on them
	reloadMu sync.Mutex
}

// NewHandler returns a handler reloading from source. A nil names uses
// the embedded item catalog.
func NewHandler(st *store.Store, names *item.Registry, source, version string) *Handler {
	if names == nil {
		names = item.Default()
	}
	return &Handler{
		store:   st,
		names:   names,
		source:  source,
		version: version,
	}
}

// Routes returns the handler map registered with the server.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/offer":   withTimeout(h.HandleOffer, defaults.GridHandlerTimeout),
		"/v1/craft":   withTimeout(h.HandleCraft, defaults.GridHandlerTimeout),
		"/v1/recipes": h.HandleRecipes,
		"/v1/reload":  h.HandleReload,
	}
}

func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return http.TimeoutHandler(next, d, "request timed out").ServeHTTP
}

// Reload loads the configured source and installs the result.
func (h *Handler) Reload(ctx context.Context) *store.LoadReport {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaults.ReloadHandlerTimeout)
	defer cancel()

	return h.store.Load(ctx, h.source)
}

// HandleOffer handles POST /v1/offer.
func (h *Handler) HandleOffer(w http.ResponseWriter, r *http.Request) {
	layout, cells, ok := h.readGrid(w, r)
	if !ok {
		return
	}

	res, _ := h.store.OfferResolved(cells, layout.Width, layout.Height)
	serializer.RespondJSON(w, http.StatusOK, store.NewOutcome(res, h.names, h.version))
}

// HandleCraft handles POST /v1/craft. The response carries the grid
// after the ingredients were taken.
func (h *Handler) HandleCraft(w http.ResponseWriter, r *http.Request) {
	layout, cells, ok := h.readGrid(w, r)
	if !ok {
		return
	}

	res, _ := h.store.CraftResolved(cells, layout.Width, layout.Height)
	out := store.NewOutcome(res, h.names, h.version)
	out.Grid = grid.FromItems(cells, layout.Width, layout.Height, h.names)
	serializer.RespondJSON(w, http.StatusOK, out)
}

// HandleRecipes handles GET /v1/recipes.
func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, h.store.Catalog(h.names, h.version))
}

// HandleReload handles POST /v1/reload. A source that cannot be opened
// is reported as unavailable; rejected lines still answer 200.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	report := h.Reload(r.Context())
	if sourceFailed(report) {
		server.WriteError(w, r, http.StatusServiceUnavailable, errors.ErrCodeUnavailable,
			"recipe source unavailable", true, map[string]any{
				"source":      report.Source,
				"diagnostics": report.Diagnostics,
			})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, report.Document(h.version))
}

// readGrid decodes and resolves the request grid, writing the error
// response itself when it fails.
func (h *Handler) readGrid(w http.ResponseWriter, r *http.Request) (*grid.Layout, []item.Item, bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return nil, nil, false
	}

	body := http.MaxBytesReader(w, r.Body, defaults.MaxGridBodyBytes)
	reader, err := serializer.NewReader(bodyFormat(r), body)
	if err != nil {
		server.WriteErrorFromErr(w, r, errors.Wrap(errors.ErrCodeInvalidRequest, "unsupported grid encoding", err), "", nil)
		return nil, nil, false
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			slog.Debug("failed to close request body", "error", cerr)
		}
	}()

	var layout grid.Layout
	if err := reader.Deserialize(&layout); err != nil {
		server.WriteErrorFromErr(w, r, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid grid layout", err), "", nil)
		return nil, nil, false
	}

	cells, err := layout.Items(h.names)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid grid layout", nil)
		return nil, nil, false
	}
	return &layout, cells, true
}

// bodyFormat picks the decoder from the Content-Type, JSON by default.
func bodyFormat(r *http.Request) serializer.Format {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return serializer.FormatJSON
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return serializer.FormatYAML
	default:
		return serializer.FormatJSON
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}

// sourceFailed reports whether the load could not open its source.
func sourceFailed(report *store.LoadReport) bool {
	for _, d := range report.Diagnostics {
		if d.Line <= 0 {
			return true
		}
	}
	return false
}
