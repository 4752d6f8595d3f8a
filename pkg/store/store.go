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

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/matcher"
	"github.com/NVIDIA/craftgrid/pkg/recipe"
	"github.com/NVIDIA/craftgrid/pkg/source"
)

// Opener returns the definition text behind a source URI.
type Opener func(ctx context.Context, uri string) ([]byte, error)

// LoadReport describes one load.
type LoadReport struct {
	Source      string              `json:"source" yaml:"source"`
	Recipes     int                 `json:"recipes" yaml:"recipes"`
	Rejected    int                 `json:"rejected" yaml:"rejected"`
	Diagnostics []recipe.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	LoadedAt    time.Time           `json:"loadedAt" yaml:"loadedAt"`
}

// OK reports whether the load produced no diagnostics.
func (r *LoadReport) OK() bool {
	return len(r.Diagnostics) == 0
}

// catalog is an immutable snapshot of the active recipes.
type catalog struct {
	recipes  recipe.Recipes
	source   string
	loadedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithRegistry resolves item names in definitions through reg.
func WithRegistry(reg *item.Registry) Option {
	return func(s *Store) {
		if reg != nil {
			s.parser = recipe.NewParser(reg)
		}
	}
}

// WithSourceOpener replaces source resolution.
func WithSourceOpener(open Opener) Option {
	return func(s *Store) {
		s.open = open
	}
}

// Store holds the active catalog. All methods are safe for concurrent use.
type Store struct {
	parser *recipe.Parser
	open   Opener
	active atomic.Pointer[catalog]
}

// New returns a store with an empty catalog.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = recipe.NewParser(nil)
	}
	if s.open == nil {
		s.open = source.Read
	}
	s.active.Store(&catalog{})
	return s
}

// Load reads and parses uri and installs the result. An unreadable
// source installs an empty catalog.
func (s *Store) Load(ctx context.Context, uri string) *LoadReport {
	data, err := s.open(ctx, uri)
	if err != nil {
		loadFailures.Inc()
		d := recipe.Diagnostic{
			Source:  uri,
			Element: recipe.ElementSource,
			Reason:  fmt.Sprintf("cannot open recipe definitions: %v", err),
		}
		return s.install(uri, nil, []recipe.Diagnostic{d})
	}
	return s.LoadReader(bytes.NewReader(data), uri)
}

// LoadReader parses r and installs the result. name identifies the
// source in diagnostics.
func (s *Store) LoadReader(r io.Reader, name string) *LoadReport {
	recipes, diags := s.parser.ParseReader(name, r)
	for _, d := range diags {
		if d.Line == 0 {
			loadFailures.Inc()
		}
	}
	return s.install(name, recipes, diags)
}

// Replace installs a copy of recipes as the active catalog.
func (s *Store) Replace(recipes recipe.Recipes, name string) {
	s.install(name, recipes.Clone(), nil)
}

func (s *Store) install(name string, recipes recipe.Recipes, diags []recipe.Diagnostic) *LoadReport {
	now := time.Now().UTC()
	s.active.Store(&catalog{recipes: recipes, source: name, loadedAt: now})

	rejected := 0
	for _, d := range diags {
		if d.Line > 0 {
			rejected++
		}
		slog.Warn("recipe definition rejected",
			"source", d.Source,
			"line", d.Line,
			"element", d.Element,
			"reason", d.Reason)
	}
	linesRejected.Add(float64(rejected))
	recipesLoaded.Set(float64(len(recipes)))

	slog.Info("recipe catalog loaded",
		"source", name,
		"recipes", len(recipes),
		"rejected", rejected)

	return &LoadReport{
		Source:      name,
		Recipes:     len(recipes),
		Rejected:    rejected,
		Diagnostics: diags,
		LoadedAt:    now,
	}
}

// Recipes returns a copy of the active catalog in priority order.
func (s *Store) Recipes() recipe.Recipes {
	return s.active.Load().recipes.Clone()
}

// Len returns the number of active recipes.
func (s *Store) Len() int {
	return len(s.active.Load().recipes)
}

// Source returns the name of the active catalog's source and when it was
// installed.
func (s *Store) Source() (string, time.Time) {
	c := s.active.Load()
	return c.source, c.loadedAt
}

// Find returns the first recipe the grid satisfies, bound to absolute
// cells. The grid is not modified.
func (s *Store) Find(cells []item.Item, width, height int) (*recipe.Resolved, bool) {
	return matcher.Find(s.active.Load().recipes, cells, width, height)
}

// Offer returns what the grid would craft, or an empty item.
func (s *Store) Offer(cells []item.Item, width, height int) item.Item {
	res, ok := s.OfferResolved(cells, width, height)
	if !ok {
		return item.Empty()
	}
	return res.Result
}

// OfferResolved is Offer returning the resolved recipe.
func (s *Store) OfferResolved(cells []item.Item, width, height int) (*recipe.Resolved, bool) {
	start := time.Now()
	res, ok := s.Find(cells, width, height)
	observeRequest(opOffer, ok, start)
	return res, ok
}

// Craft crafts from the grid in place and returns the result, or an empty
// item when nothing matches.
func (s *Store) Craft(cells []item.Item, width, height int) item.Item {
	res, ok := s.CraftResolved(cells, width, height)
	if !ok {
		return item.Empty()
	}
	return res.Result
}

// CraftResolved is Craft returning the resolved recipe, whose slots name
// the consumed cells.
func (s *Store) CraftResolved(cells []item.Item, width, height int) (*recipe.Resolved, bool) {
	start := time.Now()
	res, ok := s.Find(cells, width, height)
	observeRequest(opCraft, ok, start)
	if !ok {
		return nil, false
	}
	consume(cells, width, res)
	return res, true
}

// consume takes each slot's count from its cell and clears cells that
// reach zero. Slots outside the grid are skipped.
func consume(cells []item.Item, width int, res *recipe.Resolved) {
	for _, slot := range res.Slots {
		if slot.X < 0 || slot.X >= width || slot.Y < 0 || slot.Y > len(cells)/width {
			continue
		}
		i := slot.Y*width + slot.X
		if i >= len(cells) {
			continue
		}
		cells[i].Count -= slot.Item.Count
		if cells[i].Count <= 0 {
			cells[i].Clear()
		}
	}
}
