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

package recipe

import (
	"math"

	"github.com/NVIDIA/craftgrid/pkg/item"
)

// Wildcard marks a slot axis that may bind to any column or row.
const Wildcard = -1

// MaxAxis is the number of positions addressable per axis in a definition.
const MaxAxis = 3

// Slot is one ingredient requirement. X and Y are 0-based, or Wildcard.
type Slot struct {
	Item item.Item `json:"item" yaml:"item"`
	X    int       `json:"x" yaml:"x"`
	Y    int       `json:"y" yaml:"y"`
}

// IsWildcard reports whether either axis is unconstrained.
func (s Slot) IsWildcard() bool {
	return s.X < 0 || s.Y < 0
}

// Recipe is a normalized recipe. Slots keep definition order.
type Recipe struct {
	// Line is the definition line the recipe came from.
	Line   int       `json:"line" yaml:"line"`
	Result item.Item `json:"result" yaml:"result"`
	Slots  []Slot    `json:"slots" yaml:"slots"`
	Width  int       `json:"width" yaml:"width"`
	Height int       `json:"height" yaml:"height"`
}

// Clone returns a deep copy.
func (r Recipe) Clone() Recipe {
	out := r
	out.Slots = make([]Slot, len(r.Slots))
	copy(out.Slots, r.Slots)
	return out
}

// Normalize shifts fixed coordinates so the minimum fixed column and row
// are zero and recomputes Width and Height over fixed coordinates only.
func (r *Recipe) Normalize() {
	minX, maxX := math.MaxInt, math.MinInt
	minY, maxY := math.MaxInt, math.MinInt
	for _, s := range r.Slots {
		if s.X >= 0 {
			minX = min(minX, s.X)
			maxX = max(maxX, s.X)
		}
		if s.Y >= 0 {
			minY = min(minY, s.Y)
			maxY = max(maxY, s.Y)
		}
	}

	r.Width, r.Height = 1, 1
	if maxX >= 0 {
		for i := range r.Slots {
			if r.Slots[i].X >= 0 {
				r.Slots[i].X -= minX
			}
		}
		r.Width = maxX - minX + 1
	}
	if maxY >= 0 {
		for i := range r.Slots {
			if r.Slots[i].Y >= 0 {
				r.Slots[i].Y -= minY
			}
		}
		r.Height = maxY - minY + 1
	}
}

// Recipes is an ordered recipe collection. Order is match priority.
type Recipes []Recipe

// Clone returns a deep copy of the collection.
func (rs Recipes) Clone() Recipes {
	if rs == nil {
		return nil
	}
	out := make(Recipes, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// Resolved is a recipe bound to one grid: every slot carries the absolute
// cell it matched. It never aliases the stored recipe.
type Resolved struct {
	// Index is the recipe's position in the collection it was found in.
	Index  int       `json:"index" yaml:"index"`
	Line   int       `json:"line" yaml:"line"`
	Result item.Item `json:"result" yaml:"result"`
	Slots  []Slot    `json:"slots" yaml:"slots"`
	Width  int       `json:"width" yaml:"width"`
	Height int       `json:"height" yaml:"height"`
}
