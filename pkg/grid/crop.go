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

import "github.com/NVIDIA/craftgrid/pkg/item"

// Rect is a sub-rectangle of a grid. Left and Top are absolute.
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Index returns the buffer index of (x, y) relative to the rectangle
// origin in a grid of the given stride.
func (r Rect) Index(x, y, stride int) int {
	return (r.Top+y)*stride + r.Left + x
}

// Fits reports whether both dimensions are positive and width*height is
// at most n. The product is never computed, so it cannot overflow.
func Fits(n, width, height int) bool {
	return width > 0 && height > 0 && width <= n/height
}

// Crop returns the tight bounding box of the non-empty cells of a
// row-major grid. It reports false when every cell is empty or the
// buffer does not hold width*height cells.
func Crop(cells []item.Item, width, height int) (Rect, bool) {
	if !Fits(len(cells), width, height) {
		return Rect{}, false
	}

	left, top := width, height
	right, bottom := -1, -1
	for y := range height {
		for x := range width {
			if cells[y*width+x].IsEmpty() {
				continue
			}
			left = min(left, x)
			right = max(right, x)
			top = min(top, y)
			bottom = max(bottom, y)
		}
	}
	if right < 0 {
		return Rect{}, false
	}

	return Rect{
		Left:   left,
		Top:    top,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}, true
}
