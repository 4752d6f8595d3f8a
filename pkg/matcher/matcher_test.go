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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/recipe"
)

const (
	planks item.ID = 5
	logID  item.ID = 17
	wool   item.ID = 35
	stick  item.ID = 280
	coal   item.ID = 263
)

var (
	e = item.Empty()
	p = item.New(planks, 1, 0)
	l = item.New(logID, 1, 0)
	s = item.New(stick, 1, 0)
	c = item.New(coal, 1, 0)
)

func parse(t *testing.T, lines ...string) recipe.Recipes {
	t.Helper()
	recipes, diags := recipe.Parse("test", strings.Join(lines, "\n"))
	require.Empty(t, diags)
	return recipes
}

func TestFind_EmptyGrid(t *testing.T) {
	recipes := parse(t, "planks=log,*", "stick,4=planks,1:1|planks,1:2")

	for _, size := range [][2]int{{1, 1}, {2, 2}, {3, 3}, {4, 1}} {
		cells := make([]item.Item, size[0]*size[1])
		for i := range cells {
			cells[i] = item.Empty()
		}
		res, ok := Find(recipes, cells, size[0], size[1])
		assert.False(t, ok)
		assert.Nil(t, res)
	}
}

func TestFind_InvalidDimensions(t *testing.T) {
	recipes := parse(t, "planks=log,*")

	_, ok := Find(recipes, []item.Item{l}, 0, 1)
	assert.False(t, ok)
	_, ok = Find(recipes, []item.Item{l}, 2, 2)
	assert.False(t, ok)
	_, ok = Find(nil, []item.Item{l}, 1, 1)
	assert.False(t, ok)
}

func TestFind_SingleLog(t *testing.T) {
	recipes := parse(t, "WOOD,4=LOG,1:1")

	res, ok := Find(recipes, []item.Item{l}, 1, 1)
	require.True(t, ok)
	assert.Equal(t, item.New(planks, 4, 0), res.Result)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, 1, res.Line)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, 0, res.Slots[0].X)
	assert.Equal(t, 0, res.Slots[0].Y)
}

func TestFind_Sticks(t *testing.T) {
	recipes := parse(t, "STICK,4=PLANK,1:1|PLANK,1:2")

	res, ok := Find(recipes, []item.Item{p, p, e}, 1, 3)
	require.True(t, ok)
	assert.Equal(t, item.New(stick, 4, 0), res.Result)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, [2]int{0, 0}, [2]int{res.Slots[0].X, res.Slots[0].Y})
	assert.Equal(t, [2]int{0, 1}, [2]int{res.Slots[1].X, res.Slots[1].Y})

	// planks side by side are a different shape
	_, ok = Find(recipes, []item.Item{p, p, e}, 3, 1)
	assert.False(t, ok)
}

func TestFind_WildcardAnywhere(t *testing.T) {
	recipes := parse(t, "PLANK=LOG,*")

	for i := range 9 {
		cells := make([]item.Item, 9)
		for j := range cells {
			cells[j] = e
		}
		cells[i] = l

		res, ok := Find(recipes, cells, 3, 3)
		require.True(t, ok, "log at %d", i)
		assert.Equal(t, planks, res.Result.Type)
		require.Len(t, res.Slots, 1)
		assert.Equal(t, i%3, res.Slots[0].X)
		assert.Equal(t, i/3, res.Slots[0].Y)
	}

	_, ok := Find(recipes, []item.Item{l, l}, 2, 1)
	assert.False(t, ok, "second log is left over")
}

func TestFind_EachRecipeMatchesItself(t *testing.T) {
	recipes := parse(t,
		"stick,4=planks,1:1|planks,1:2",
		"crafting_table=planks,1:1,2:1,1:2,2:2",
		"torch,4=coal,1:1|stick,1:2",
		"chest=planks,1:1,2:1,3:1,1:2,3:2,1:3,2:3,3:3",
		"wooden_pickaxe=planks,1:1,2:1,3:1|stick,2:2,2:3",
		"bowl,4=planks,1:1,3:1,2:2",
	)

	for i, r := range recipes {
		w, h := 3, 3
		cells := make([]item.Item, w*h)
		for j := range cells {
			cells[j] = e
		}
		for _, slot := range r.Slots {
			cells[slot.Y*w+slot.X] = item.New(slot.Item.Type, 1, slot.Item.Damage)
		}

		res, ok := Find(recipes, cells, w, h)
		require.True(t, ok, "recipe %d", i)
		assert.Equal(t, i, res.Index)
		assert.Equal(t, r.Result, res.Result)
	}
}

func TestFind_BorderInvariance(t *testing.T) {
	recipes := parse(t, "torch,4=coal,1:1|stick,1:2")

	small, ok := Find(recipes, []item.Item{c, s}, 1, 2)
	require.True(t, ok)

	// same layout surrounded by a one cell border in a 3x4 grid
	big := []item.Item{
		e, e, e,
		e, c, e,
		e, s, e,
		e, e, e,
	}
	shifted, ok := Find(recipes, big, 3, 4)
	require.True(t, ok)

	assert.Equal(t, small.Index, shifted.Index)
	assert.Equal(t, small.Result, shifted.Result)
	require.Len(t, shifted.Slots, len(small.Slots))
	for i := range small.Slots {
		assert.Equal(t, small.Slots[i].X+1, shifted.Slots[i].X)
		assert.Equal(t, small.Slots[i].Y+1, shifted.Slots[i].Y)
	}
}

func TestFind_CatalogOrderWins(t *testing.T) {
	recipes := parse(t,
		"stick=planks,*",
		"crafting_table=planks,1:1",
	)
	res, ok := Find(recipes, []item.Item{p}, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, stick, res.Result.Type)

	reversed := recipe.Recipes{recipes[1], recipes[0]}
	res, ok = Find(reversed, []item.Item{p}, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, item.ID(58), res.Result.Type)
}

func TestFind_ColumnOffsetBeforeRowOffset(t *testing.T) {
	// matches at (dx=0, dy=1) and at (dx=1, dy=0); the column offset is
	// the outer loop so the fixed slot lands in column 0
	recipes := parse(t, "stick=planks,1:1|planks,*|planks,*")
	cells := []item.Item{
		e, p,
		p, p,
	}
	res, ok := Find(recipes, cells, 2, 2)
	require.True(t, ok)
	require.Len(t, res.Slots, 3)
	assert.Equal(t, [2]int{0, 1}, [2]int{res.Slots[0].X, res.Slots[0].Y})
	assert.Equal(t, [2]int{1, 0}, [2]int{res.Slots[1].X, res.Slots[1].Y})
	assert.Equal(t, [2]int{1, 1}, [2]int{res.Slots[2].X, res.Slots[2].Y})
}

func TestFind_LeftoverCell(t *testing.T) {
	recipes := parse(t, "stick=planks,1:1|planks,*:2")
	cells := []item.Item{
		p, e,
		p, p,
	}
	_, ok := Find(recipes, cells, 2, 2)
	assert.False(t, ok)

	cells = []item.Item{
		p, e,
		p, e,
	}
	_, ok = Find(recipes, cells, 2, 2)
	assert.True(t, ok)
}

func TestFind_OffsetOrderPicksFirstColumn(t *testing.T) {
	// fixed slot plus a fully free slot: the fixed slot lands on the first
	// column offset that holds planks
	recipes := parse(t, "stick=planks,1:1|coal,*")
	cells := []item.Item{
		c, p,
	}
	res, ok := Find(recipes, cells, 2, 1)
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 0}, [2]int{res.Slots[0].X, res.Slots[0].Y})
	assert.Equal(t, [2]int{0, 0}, [2]int{res.Slots[1].X, res.Slots[1].Y})

	cells = []item.Item{
		p, p,
	}
	recipes = parse(t, "stick=planks,1:1|planks,*")
	res, ok = Find(recipes, cells, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 0, res.Slots[0].X, "dx=0 is tried first")
	assert.Equal(t, 1, res.Slots[1].X)
}

func TestFind_FixedAxisIsNotOffset(t *testing.T) {
	// the row wildcard scans its stored row (0), not row 0+dy
	recipes := parse(t, "stick=planks,1:1|torch,*:1")
	torch := item.New(50, 1, 0)
	cells := []item.Item{
		e, torch,
		p, e,
	}
	res, ok := Find(recipes, cells, 2, 2)
	require.True(t, ok)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, [2]int{0, 1}, [2]int{res.Slots[0].X, res.Slots[0].Y})
	assert.Equal(t, [2]int{1, 0}, [2]int{res.Slots[1].X, res.Slots[1].Y})
}

func TestFind_DamageConventions(t *testing.T) {
	tests := []struct {
		name string
		line string
		cell item.Item
		ok   bool
	}{
		{name: "fixed zero ignores damage", line: "stick=wool,1:1", cell: item.New(wool, 1, 5), ok: true},
		{name: "fixed negative ignores damage", line: "stick=wool^-1,1:1", cell: item.New(wool, 1, 5), ok: true},
		{name: "fixed positive matches equal", line: "stick=wool^3,1:1", cell: item.New(wool, 1, 3), ok: true},
		{name: "fixed positive rejects other", line: "stick=wool^3,1:1", cell: item.New(wool, 1, 5), ok: false},
		{name: "wildcard zero requires zero", line: "stick=wool,*", cell: item.New(wool, 1, 5), ok: false},
		{name: "wildcard zero matches zero", line: "stick=wool,*", cell: item.New(wool, 1, 0), ok: true},
		{name: "wildcard negative ignores damage", line: "stick=wool^-1,*", cell: item.New(wool, 1, 5), ok: true},
		{name: "wildcard positive matches equal", line: "stick=wool^5,*", cell: item.New(wool, 1, 5), ok: true},
		{name: "wrong type", line: "stick=wool,1:1", cell: item.New(planks, 1, 0), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Find(parse(t, tt.line), []item.Item{tt.cell}, 1, 1)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFind_GreedyWildcardLimitation(t *testing.T) {
	// logically satisfiable: column 0 takes (0,0) and row 0 takes (1,0),
	// but the row wildcard is bound first and claims (0,0)
	cells := []item.Item{p, p}

	_, ok := Find(parse(t, "stick=planks,*:1|planks,1:*"), cells, 2, 1)
	assert.False(t, ok)

	res, ok := Find(parse(t, "stick=planks,1:*|planks,*:1"), cells, 2, 1)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{res.Slots[0].X, res.Slots[0].Y})
	assert.Equal(t, [2]int{1, 0}, [2]int{res.Slots[1].X, res.Slots[1].Y})
}

func TestFind_StoredSlotOrder(t *testing.T) {
	// wildcard slot listed first keeps position 0 in the resolved recipe
	recipes := parse(t, "torch=coal,*|stick,1:1")
	res, ok := Find(recipes, []item.Item{s, c}, 2, 1)
	require.True(t, ok)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, coal, res.Slots[0].Item.Type)
	assert.Equal(t, 1, res.Slots[0].X)
	assert.Equal(t, stick, res.Slots[1].Item.Type)
	assert.Equal(t, 0, res.Slots[1].X)
}

func TestFind_CountRequirement(t *testing.T) {
	recipes := parse(t, "stick=planks,1:1")

	_, ok := Find(recipes, []item.Item{item.New(planks, 64, 0)}, 1, 1)
	assert.True(t, ok)

	// zero count cells are empty
	_, ok = Find(recipes, []item.Item{item.New(planks, 0, 0)}, 1, 1)
	assert.False(t, ok)
}

func TestFind_ResolvedDoesNotAlias(t *testing.T) {
	recipes := parse(t, "stick,4=planks,1:1|planks,1:2")
	res, ok := Find(recipes, []item.Item{e, p, e, p}, 2, 2)
	require.True(t, ok)
	assert.Equal(t, 1, res.Slots[0].X)

	res.Slots[0].X = 9
	res.Result.Count = 99
	assert.Equal(t, 0, recipes[0].Slots[0].X)
	assert.Equal(t, 4, recipes[0].Result.Count)
}
