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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/craftgrid/pkg/grid"
	"github.com/NVIDIA/craftgrid/pkg/header"
	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/recipe"
)

// RecipeEntry is one recipe rendered with item names.
type RecipeEntry struct {
	Line        int      `json:"line" yaml:"line"`
	Result      string   `json:"result" yaml:"result"`
	Count       int      `json:"count" yaml:"count"`
	Width       int      `json:"width" yaml:"width"`
	Height      int      `json:"height" yaml:"height"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}

// CatalogDocument is the serialized form of the active catalog.
type CatalogDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	Source   string        `json:"source" yaml:"source"`
	LoadedAt time.Time     `json:"loadedAt" yaml:"loadedAt"`
	Recipes  []RecipeEntry `json:"recipes" yaml:"recipes"`
}

// Catalog renders the active catalog with names from names.
func (s *Store) Catalog(names grid.Namer, version string) *CatalogDocument {
	if names == nil {
		names = item.Default()
	}
	c := s.active.Load()

	doc := &CatalogDocument{
		Source:   c.source,
		LoadedAt: c.loadedAt,
		Recipes:  make([]RecipeEntry, 0, len(c.recipes)),
	}
	doc.Init(header.KindRecipeCatalog, version)

	for _, r := range c.recipes {
		e := RecipeEntry{
			Line:        r.Line,
			Result:      stackName(r.Result, names),
			Count:       r.Result.Count,
			Width:       r.Width,
			Height:      r.Height,
			Ingredients: make([]string, 0, len(r.Slots)),
		}
		for _, slot := range r.Slots {
			e.Ingredients = append(e.Ingredients, slotString(slot, names))
		}
		doc.Recipes = append(doc.Recipes, e)
	}
	return doc
}

// TableHeader implements serializer.Tabular.
func (d *CatalogDocument) TableHeader() []string {
	return []string{"LINE", "RESULT", "COUNT", "SIZE", "INGREDIENTS"}
}

// TableRows implements serializer.Tabular.
func (d *CatalogDocument) TableRows() [][]string {
	rows := make([][]string, 0, len(d.Recipes))
	for _, e := range d.Recipes {
		rows = append(rows, []string{
			strconv.Itoa(e.Line),
			e.Result,
			strconv.Itoa(e.Count),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			strings.Join(e.Ingredients, " | "),
		})
	}
	return rows
}

// ConsumedCell is one grid cell a matched recipe draws from.
type ConsumedCell struct {
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Item   string `json:"item" yaml:"item"`
	Count  int    `json:"count" yaml:"count"`
	Damage int    `json:"damage,omitempty" yaml:"damage,omitempty"`
}

// Outcome is the result of an offer or craft.
type Outcome struct {
	header.Header `json:",inline" yaml:",inline"`

	Matched  bool           `json:"matched" yaml:"matched"`
	Result   *grid.Cell     `json:"result,omitempty" yaml:"result,omitempty"`
	Line     int            `json:"line,omitempty" yaml:"line,omitempty"`
	Consumed []ConsumedCell `json:"consumed,omitempty" yaml:"consumed,omitempty"`
	Grid     *grid.Layout   `json:"grid,omitempty" yaml:"grid,omitempty"`
}

// NewOutcome renders res, which may be nil when nothing matched.
// The consumed cells report the required stack of each slot.
func NewOutcome(res *recipe.Resolved, names grid.Namer, version string) *Outcome {
	if names == nil {
		names = item.Default()
	}
	out := &Outcome{}
	out.Init(header.KindCraftResult, version)
	if res == nil {
		return out
	}

	out.Matched = true
	out.Line = res.Line
	out.Result = cellOf(res.Result, names)
	out.Consumed = make([]ConsumedCell, 0, len(res.Slots))
	for _, slot := range res.Slots {
		out.Consumed = append(out.Consumed, ConsumedCell{
			X:      slot.X,
			Y:      slot.Y,
			Item:   names.Name(slot.Item.Type),
			Count:  slot.Item.Count,
			Damage: slot.Item.Damage,
		})
	}
	return out
}

// TableHeader implements serializer.Tabular.
func (o *Outcome) TableHeader() []string {
	return []string{"MATCHED", "RESULT", "COUNT", "CONSUMED"}
}

// TableRows implements serializer.Tabular.
func (o *Outcome) TableRows() [][]string {
	if !o.Matched || o.Result == nil {
		return [][]string{{"false", "-", "0", "-"}}
	}
	consumed := make([]string, 0, len(o.Consumed))
	for _, c := range o.Consumed {
		consumed = append(consumed, fmt.Sprintf("%s@%d:%d", c.Item, c.X, c.Y))
	}
	count := 1
	if o.Result.Count != nil {
		count = *o.Result.Count
	}
	return [][]string{{"true", o.Result.Item, strconv.Itoa(count), strings.Join(consumed, " ")}}
}

func cellOf(it item.Item, names grid.Namer) *grid.Cell {
	l := grid.FromItems([]item.Item{it}, 1, 1, names)
	return l.Cells[0]
}

func stackName(it item.Item, names grid.Namer) string {
	name := names.Name(it.Type)
	if it.Damage != 0 {
		name += "^" + strconv.Itoa(it.Damage)
	}
	return name
}

func slotString(slot recipe.Slot, names grid.Namer) string {
	s := stackName(slot.Item, names)
	if slot.Item.Count != 1 {
		s += " x" + strconv.Itoa(slot.Item.Count)
	}
	return s + " " + axisString(slot.X) + ":" + axisString(slot.Y)
}

// axisString renders a 0-based coordinate in 1-based definition form.
func axisString(v int) string {
	if v < 0 {
		return "*"
	}
	return strconv.Itoa(v + 1)
}

// LoadDocument is the serialized form of a LoadReport.
type LoadDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	LoadReport    `json:",inline" yaml:",inline"`
}

// Document wraps the report in a LoadReport header.
func (r *LoadReport) Document(version string) *LoadDocument {
	doc := &LoadDocument{LoadReport: *r}
	doc.Init(header.KindLoadReport, version)
	return doc
}

// TableHeader implements serializer.Tabular.
func (d *LoadDocument) TableHeader() []string {
	return []string{"SOURCE", "LINE", "ELEMENT", "REASON"}
}

// TableRows implements serializer.Tabular. A clean load renders one
// summary row.
func (d *LoadDocument) TableRows() [][]string {
	if len(d.Diagnostics) == 0 {
		return [][]string{{d.Source, "-", "-", fmt.Sprintf("%d recipes loaded", d.Recipes)}}
	}
	rows := make([][]string, 0, len(d.Diagnostics))
	for _, diag := range d.Diagnostics {
		line := "-"
		if diag.Line > 0 {
			line = strconv.Itoa(diag.Line)
		}
		rows = append(rows, []string{diag.Source, line, diag.Element, diag.Reason})
	}
	return rows
}
