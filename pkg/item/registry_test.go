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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/NVIDIA/craftgrid/pkg/errors"
)

func TestItem_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   Item
		want bool
	}{
		{"canonical empty", Empty(), true},
		{"zero value", Item{}, true},
		{"zero count", New(5, 0, 0), true},
		{"negative count", New(5, -1, 0), true},
		{"stack", New(5, 1, 0), false},
		{"damaged stack", New(35, 3, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.IsEmpty())
		})
	}
}

func TestItem_Clear(t *testing.T) {
	it := New(17, 4, 2)
	it.Clear()
	assert.True(t, it.IsEmpty())
	assert.Equal(t, EmptyID, it.Type)
}

func TestItem_String(t *testing.T) {
	assert.Equal(t, "empty", Empty().String())
	assert.Equal(t, "4 x 5", New(5, 4, 0).String())
	assert.Equal(t, "1 x 35^14", New(35, 1, 14).String())
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	require.NotNil(t, reg)
	assert.Greater(t, reg.Len(), 50)
	assert.Same(t, reg, Default())
}

func TestRegistry_Resolve(t *testing.T) {
	reg := Default()

	tests := []struct {
		in   string
		want ID
	}{
		{"planks", 5},
		{"PLANK", 5},
		{"Wood", 5},
		{"LOG", 17},
		{"stick", 280},
		{"  stick  ", 280},
		{"crafting table", 58},
		{"crafting-table", 58},
		{"Workbench", 58},
		{"280", 280},
		{"0", 0},
		{"9999", 9999},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := reg.Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := Default()

	for _, in := range []string{"", "   ", "-3", "unobtainium"} {
		t.Run(in, func(t *testing.T) {
			id, err := reg.Resolve(in)
			assert.Equal(t, EmptyID, id)
			var unknown *UnknownItemError
			require.True(t, errors.As(err, &unknown))
		})
	}
}

func TestRegistry_ResolveSuggests(t *testing.T) {
	_, err := Default().Resolve("plnks")

	var unknown *UnknownItemError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown.Suggestions, "planks")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestRegistry_Name(t *testing.T) {
	reg := Default()
	assert.Equal(t, "stick", reg.Name(280))
	assert.Equal(t, "planks", reg.Name(5))
	assert.Equal(t, "4242", reg.Name(4242))
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"non-positive id", []Definition{{ID: 0, Name: "air"}}},
		{"duplicate id", []Definition{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}},
		{"duplicate alias", []Definition{{ID: 1, Name: "a"}, {ID: 2, Name: "b", Aliases: []string{"A"}}}},
		{"empty name", []Definition{{ID: 1, Name: " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs)
			require.Error(t, err)
			assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidRequest))
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	const catalog = `
items:
  - {id: 300, name: ruby, aliases: [red gem]}
  - {id: 100, name: ore}
`
	reg, err := LoadRegistry(strings.NewReader(catalog))
	require.NoError(t, err)

	id, err := reg.Resolve("Red Gem")
	require.NoError(t, err)
	assert.Equal(t, ID(300), id)

	defs := reg.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, ID(100), defs[0].ID, "definitions are ordered by id")
}

func TestLoadRegistry_Malformed(t *testing.T) {
	_, err := LoadRegistry(strings.NewReader("items: [ {id: "))
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidRequest))
}

func TestLoadRegistryFile_Missing(t *testing.T) {
	_, err := LoadRegistryFile("/nonexistent/items.yaml")
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeNotFound))
}
