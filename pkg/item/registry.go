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

package item

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	cerrors "github.com/NVIDIA/craftgrid/pkg/errors"
)

//go:embed items.yaml
var defaultCatalog []byte

// maxSuggestions caps the names offered for an unknown item.
const maxSuggestions = 3

// Definition describes one catalog entry.
type Definition struct {
	ID      ID       `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Catalog is the serialized form of a registry.
type Catalog struct {
	Items []Definition `json:"items" yaml:"items"`
}

// UnknownItemError is returned when a name matches no catalog entry.
type UnknownItemError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownItemError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown item %q", e.Name)
	}
	return fmt.Sprintf("unknown item %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Registry maps item names onto ids. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	defs   []Definition
	byName map[string]ID
	names  map[ID]string
}

// NewRegistry builds a registry from catalog entries. Names and aliases
// must be unique across the catalog, and ids must be positive.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:   make([]Definition, 0, len(defs)),
		byName: make(map[string]ID, len(defs)),
		names:  make(map[ID]string, len(defs)),
	}

	for _, d := range defs {
		if d.ID <= 0 {
			return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
				"item id must be positive", map[string]any{"name": d.Name, "id": int(d.ID)})
		}
		if _, dup := r.names[d.ID]; dup {
			return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
				"duplicate item id", map[string]any{"id": int(d.ID)})
		}
		canonical := foldName(d.Name)
		if canonical == "" {
			return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
				"item name is empty", map[string]any{"id": int(d.ID)})
		}
		r.names[d.ID] = canonical

		for _, n := range append([]string{d.Name}, d.Aliases...) {
			key := foldName(n)
			if prev, dup := r.byName[key]; dup {
				return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
					"duplicate item name", map[string]any{"name": key, "ids": []int{int(prev), int(d.ID)}})
			}
			r.byName[key] = d.ID
		}
		r.defs = append(r.defs, d)
	}

	sort.Slice(r.defs, func(i, j int) bool { return r.defs[i].ID < r.defs[j].ID })
	return r, nil
}

// LoadRegistry decodes a YAML catalog.
func LoadRegistry(in io.Reader) (*Registry, error) {
	var c Catalog
	if err := yaml.NewDecoder(in).Decode(&c); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to decode item catalog", err)
	}
	return NewRegistry(c.Items)
}

// LoadRegistryFile decodes a YAML catalog file.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNotFound, fmt.Sprintf("failed to open item catalog %s", path), err)
	}
	defer f.Close()
	return LoadRegistry(f)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := LoadRegistry(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded item catalog is invalid: %v", err))
	}
	return r
})

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	return defaultRegistry()
}

// Resolve returns the id for a name, alias or decimal id.
func (r *Registry) Resolve(name string) (ID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return EmptyID, &UnknownItemError{Name: name}
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return EmptyID, &UnknownItemError{Name: name}
		}
		return ID(n), nil
	}
	if id, ok := r.byName[foldName(trimmed)]; ok {
		return id, nil
	}
	return EmptyID, &UnknownItemError{Name: trimmed, Suggestions: r.Suggest(trimmed)}
}

// Name returns the canonical name of an id, or its decimal form when the
// id is not in the catalog.
func (r *Registry) Name(id ID) string {
	if n, ok := r.names[id]; ok {
		return n
	}
	return strconv.Itoa(int(id))
}

// Definitions returns the catalog entries ordered by id.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Suggest returns up to three known names close to name, closest first.
func (r *Registry) Suggest(name string) []string {
	key := foldName(name)
	if len(key) < 2 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for n := range r.byName {
		d := levenshtein.ComputeDistance(key, n)
		if d > distanceLimit(len(n)) {
			continue
		}
		hits = append(hits, scored{name: n, dist: d})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for _, h := range hits {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, h.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// foldName case-folds a name and maps spaces and dashes onto underscores.
// Casers are stateful, so each call gets its own.
func foldName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return cases.Fold().String(s)
}
