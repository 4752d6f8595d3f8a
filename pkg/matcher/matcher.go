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

package matcher

import (
	"github.com/NVIDIA/craftgrid/pkg/grid"
	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/recipe"
)

// Find returns the first recipe matching the row-major grid of the given
// dimensions, with every slot bound to an absolute cell. The grid is not
// modified or retained.
func Find(recipes recipe.Recipes, cells []item.Item, width, height int) (*recipe.Resolved, bool) {
	crop, ok := grid.Crop(cells, width, height)
	if !ok {
		return nil, false
	}

	a := attempt{cells: cells, stride: width, crop: crop}
	for i := range recipes {
		r := &recipes[i]
		if r.Width > crop.Width || r.Height > crop.Height {
			continue
		}
		for dx := 0; dx <= crop.Width-r.Width; dx++ {
			for dy := 0; dy <= crop.Height-r.Height; dy++ {
				if res, ok := a.match(r, dx, dy); ok {
					res.Index = i
					return res, true
				}
			}
		}
	}
	return nil, false
}

type attempt struct {
	cells  []item.Item
	stride int
	crop   grid.Rect
	used   []bool
}

// cell returns the item at (x, y) relative to the crop origin.
func (a *attempt) cell(x, y int) item.Item {
	return a.cells[a.crop.Index(x, y, a.stride)]
}

func (a *attempt) reset() {
	n := a.crop.Width * a.crop.Height
	if a.used == nil {
		a.used = make([]bool, n)
		return
	}
	clear(a.used)
}

// match tries r at offset (dx, dy). Bound coordinates are crop-relative
// until the resolved recipe is built.
func (a *attempt) match(r *recipe.Recipe, dx, dy int) (*recipe.Resolved, bool) {
	a.reset()
	bound := make([]recipe.Slot, len(r.Slots))

	for i, s := range r.Slots {
		if s.IsWildcard() {
			continue
		}
		x, y := s.X+dx, s.Y+dy
		if !fixedMatches(s.Item, a.cell(x, y)) {
			return nil, false
		}
		a.used[y*a.crop.Width+x] = true
		bound[i] = recipe.Slot{Item: s.Item, X: x, Y: y}
	}

	for i, s := range r.Slots {
		if !s.IsWildcard() {
			continue
		}
		x, y, ok := a.claim(s)
		if !ok {
			return nil, false
		}
		bound[i] = recipe.Slot{Item: s.Item, X: x, Y: y}
	}

	for y := range a.crop.Height {
		for x := range a.crop.Width {
			if !a.used[y*a.crop.Width+x] && !a.cell(x, y).IsEmpty() {
				return nil, false
			}
		}
	}

	for i := range bound {
		bound[i].X += a.crop.Left
		bound[i].Y += a.crop.Top
	}
	return &recipe.Resolved{
		Line:   r.Line,
		Result: r.Result,
		Slots:  bound,
		Width:  r.Width,
		Height: r.Height,
	}, true
}

// claim binds a wildcard slot to the first unused matching cell. A fixed
// axis outside the crop matches nothing.
func (a *attempt) claim(s recipe.Slot) (int, int, bool) {
	x0, x1 := 0, a.crop.Width
	if s.X >= 0 {
		if s.X >= a.crop.Width {
			return 0, 0, false
		}
		x0, x1 = s.X, s.X+1
	}
	y0, y1 := 0, a.crop.Height
	if s.Y >= 0 {
		if s.Y >= a.crop.Height {
			return 0, 0, false
		}
		y0, y1 = s.Y, s.Y+1
	}

	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if a.used[y*a.crop.Width+x] {
				continue
			}
			if wildcardMatches(s.Item, a.cell(x, y)) {
				a.used[y*a.crop.Width+x] = true
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// fixedMatches compares a fixed slot with a cell. Slot damage <= 0 ignores damage.
func fixedMatches(want, got item.Item) bool {
	if want.Type != got.Type || got.Count < want.Count {
		return false
	}
	return want.Damage <= 0 || want.Damage == got.Damage
}

// wildcardMatches compares a wildcard slot with a cell. Slot damage < 0 ignores damage.
func wildcardMatches(want, got item.Item) bool {
	if want.Type != got.Type {
		return false
	}
	return want.Damage < 0 || want.Damage == got.Damage
}
