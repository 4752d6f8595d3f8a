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

import "fmt"

// ID identifies an item type.
type ID int

// EmptyID marks a cell that holds nothing.
const EmptyID ID = -1

// Item is a stack of one item type.
type Item struct {
	Type   ID  `json:"type" yaml:"type"`
	Count  int `json:"count" yaml:"count"`
	Damage int `json:"damage" yaml:"damage"`
}

// New returns an item stack.
func New(t ID, count, damage int) Item {
	return Item{Type: t, Count: count, Damage: damage}
}

// Empty returns the canonical empty item.
func Empty() Item {
	return Item{Type: EmptyID}
}

// IsEmpty reports whether the stack holds nothing.
func (i Item) IsEmpty() bool {
	return i.Type <= 0 || i.Count <= 0
}

// Clear empties the stack in place.
func (i *Item) Clear() {
	*i = Empty()
}

// String returns a compact form like "3 x 5^2" (count 3, type 5, damage 2).
func (i Item) String() string {
	if i.IsEmpty() {
		return "empty"
	}
	if i.Damage != 0 {
		return fmt.Sprintf("%d x %d^%d", i.Count, i.Type, i.Damage)
	}
	return fmt.Sprintf("%d x %d", i.Count, i.Type)
}
