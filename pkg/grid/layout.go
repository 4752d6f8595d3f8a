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

package grid

import (
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/item"
)

// Resolver maps item names onto ids.
type Resolver interface {
	Resolve(name string) (item.ID, error)
}

// Namer maps item ids back onto display names.
type Namer interface {
	Name(id item.ID) string
}

// Cell is one stack in a layout. Count defaults to 1, Damage to 0.
type Cell struct {
	Item   string `json:"item" yaml:"item"`
	Count  *int   `json:"count,omitempty" yaml:"count,omitempty"`
	Damage *int   `json:"damage,omitempty" yaml:"damage,omitempty"`
}

// Layout is a row-major crafting grid. Missing trailing cells are empty.
type Layout struct {
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Cells  []*Cell `json:"cells" yaml:"cells"`
}

// Validate checks the dimensions and the cell count.
func (l *Layout) Validate() error {
	if l == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "grid layout is required")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "grid dimensions must be positive", map[string]any{
			"width":  l.Width,
			"height": l.Height,
		})
	}
	if !Fits(defaults.MaxGridCells, l.Width, l.Height) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("grid exceeds %d cells", defaults.MaxGridCells), map[string]any{
				"width":  l.Width,
				"height": l.Height,
			})
	}
	if len(l.Cells) > l.Width*l.Height {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "grid has more cells than width*height", map[string]any{
			"cells": len(l.Cells),
			"size":  l.Width * l.Height,
		})
	}
	return nil
}

// Items validates the layout and resolves it into Width*Height cells.
func (l *Layout) Items(names Resolver) ([]item.Item, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if names == nil {
		names = item.Default()
	}

	cells := make([]item.Item, l.Width*l.Height)
	for i := range cells {
		cells[i] = item.Empty()
		if i >= len(l.Cells) || l.Cells[i] == nil || l.Cells[i].Item == "" {
			continue
		}

		c := l.Cells[i]
		id, err := names.Resolve(c.Item)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid grid cell", err, map[string]any{
				"x": i % l.Width,
				"y": i / l.Width,
			})
		}
		count := ptr.Deref(c.Count, 1)
		if count < 0 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "cell count must not be negative", map[string]any{
				"x":     i % l.Width,
				"y":     i / l.Width,
				"count": count,
			})
		}
		cells[i] = item.New(id, count, ptr.Deref(c.Damage, 0))
		if cells[i].IsEmpty() {
			cells[i] = item.Empty()
		}
	}
	return cells, nil
}

// FromItems builds a layout from a row-major buffer. Empty cells become nil.
func FromItems(cells []item.Item, width, height int, names Namer) *Layout {
	if names == nil {
		names = item.Default()
	}

	l := &Layout{
		Width:  width,
		Height: height,
		Cells:  make([]*Cell, cellCount(len(cells), width, height)),
	}
	for i := range l.Cells {
		it := cells[i]
		if it.IsEmpty() {
			continue
		}
		c := &Cell{Item: names.Name(it.Type), Count: ptr.To(it.Count)}
		if it.Damage != 0 {
			c.Damage = ptr.To(it.Damage)
		}
		l.Cells[i] = c
	}
	return l
}

// cellCount is min(n, width*height), or 0 for non-positive dimensions.
func cellCount(n, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if Fits(n, width, height) {
		return width * height
	}
	return n
}
