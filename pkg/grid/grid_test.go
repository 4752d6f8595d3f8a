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
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/item"
)

// wrapSide squared overflows int to exactly zero.
const wrapSide = 1 << (strconv.IntSize / 2)

func TestFits(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		width  int
		height int
		want   bool
	}{
		{name: "exact", n: 9, width: 3, height: 3, want: true},
		{name: "larger buffer", n: 10, width: 3, height: 3, want: true},
		{name: "short", n: 8, width: 3, height: 3},
		{name: "zero width", n: 9, width: 0, height: 3},
		{name: "negative height", n: 9, width: 3, height: -3},
		{name: "product wraps to zero", n: 0, width: wrapSide, height: wrapSide},
		{name: "product wraps negative", n: 1024, width: math.MaxInt/2 + 1, height: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.n, tt.width, tt.height))
		})
	}
}

func TestCrop(t *testing.T) {
	e := item.Empty()
	p := item.New(5, 1, 0)

	tests := []struct {
		name   string
		cells  []item.Item
		width  int
		height int
		want   Rect
		ok     bool
	}{
		{name: "all empty", cells: []item.Item{e, e, e, e}, width: 2, height: 2},
		{name: "zero width", cells: nil, width: 0, height: 3},
		{name: "short buffer", cells: []item.Item{p}, width: 2, height: 2},
		{name: "huge dimensions", cells: []item.Item{}, width: wrapSide, height: wrapSide},
		{name: "huge width", cells: []item.Item{p, p, p}, width: math.MaxInt/2 + 1, height: 3},
		{name: "single cell", cells: []item.Item{p}, width: 1, height: 1, want: Rect{Width: 1, Height: 1}, ok: true},
		{
			name:   "center of 3x3",
			cells:  []item.Item{e, e, e, e, p, e, e, e, e},
			width:  3,
			height: 3,
			want:   Rect{Left: 1, Top: 1, Width: 1, Height: 1},
			ok:     true,
		},
		{
			name:   "diagonal corners",
			cells:  []item.Item{e, e, e, e, p, e, e, e, p},
			width:  3,
			height: 3,
			want:   Rect{Left: 1, Top: 1, Width: 2, Height: 2},
			ok:     true,
		},
		{
			name:   "zero count is empty",
			cells:  []item.Item{item.New(5, 0, 0), p},
			width:  2,
			height: 1,
			want:   Rect{Left: 1, Width: 1, Height: 1},
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Crop(tt.cells, tt.width, tt.height)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRect_Index(t *testing.T) {
	r := Rect{Left: 1, Top: 2, Width: 2, Height: 1}
	assert.Equal(t, 2*3+1, r.Index(0, 0, 3))
	assert.Equal(t, 2*3+2, r.Index(1, 0, 3))
}

func TestLayout_Items(t *testing.T) {
	in := `
width: 2
height: 2
cells:
  - {item: planks}
  - null
  - {item: Wool, count: 3, damage: 14}
`
	var l Layout
	require.NoError(t, yaml.Unmarshal([]byte(in), &l))

	cells, err := l.Items(item.Default())
	require.NoError(t, err)
	require.Len(t, cells, 4)
	assert.Equal(t, item.New(5, 1, 0), cells[0])
	assert.True(t, cells[1].IsEmpty())
	assert.Equal(t, item.New(35, 3, 14), cells[2])
	assert.Equal(t, item.Empty(), cells[3])
}

func TestLayout_ItemsZeroCountIsEmpty(t *testing.T) {
	l := &Layout{Width: 1, Height: 1, Cells: []*Cell{{Item: "planks", Count: ptr.To(0)}}}
	cells, err := l.Items(nil)
	require.NoError(t, err)
	assert.Equal(t, item.Empty(), cells[0])
}

func TestLayout_ItemsErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout *Layout
	}{
		{name: "nil", layout: nil},
		{name: "zero width", layout: &Layout{Width: 0, Height: 3}},
		{name: "negative height", layout: &Layout{Width: 3, Height: -1}},
		{name: "too large", layout: &Layout{Width: 100, Height: 100}},
		{name: "size wraps to zero", layout: &Layout{Width: wrapSide, Height: wrapSide}},
		{name: "size wraps negative", layout: &Layout{Width: math.MaxInt/2 + 1, Height: 3}},
		{name: "too many cells", layout: &Layout{Width: 1, Height: 1, Cells: []*Cell{{Item: "planks"}, {Item: "planks"}}}},
		{name: "unknown item", layout: &Layout{Width: 1, Height: 1, Cells: []*Cell{{Item: "plnks"}}}},
		{name: "negative count", layout: &Layout{Width: 1, Height: 1, Cells: []*Cell{{Item: "planks", Count: ptr.To(-2)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Items(item.Default())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
		})
	}
}

func TestLayout_UnknownItemSuggests(t *testing.T) {
	l := &Layout{Width: 1, Height: 1, Cells: []*Cell{{Item: "plnks"}}}
	_, err := l.Items(item.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planks")
}

func TestFromItems(t *testing.T) {
	cells := []item.Item{item.New(5, 2, 0), item.Empty(), item.New(35, 1, 14)}
	l := FromItems(cells, 3, 1, item.Default())

	assert.Equal(t, 3, l.Width)
	assert.Equal(t, 1, l.Height)
	require.Len(t, l.Cells, 3)
	assert.Equal(t, &Cell{Item: "planks", Count: ptr.To(2)}, l.Cells[0])
	assert.Nil(t, l.Cells[1])
	assert.Equal(t, &Cell{Item: "wool", Count: ptr.To(1), Damage: ptr.To(14)}, l.Cells[2])

	back, err := l.Items(item.Default())
	require.NoError(t, err)
	assert.Equal(t, cells, back)
}

func TestFromItems_Dimensions(t *testing.T) {
	cells := []item.Item{item.New(5, 1, 0), item.New(5, 1, 0)}

	assert.Len(t, FromItems(cells, 1, 1, nil).Cells, 1)
	assert.Len(t, FromItems(cells, 3, 3, nil).Cells, 2)
	assert.Empty(t, FromItems(cells, 0, 3, nil).Cells)
	assert.Len(t, FromItems(cells, wrapSide, wrapSide, nil).Cells, 2)
}
