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

// Package recipe parses crafting recipe definitions into normalized recipes.
//
// # Definition Format
//
// One recipe per line; '#' starts a comment and blank lines are ignored:
//
//	# result[,count] = ingredient | ingredient ...
//	planks,4 = log, 1:1
//	stick,4  = planks, 1:1 | planks, 1:2
//	torch,4  = coal, 1:1 | stick, 1:2
//	chest    = planks, 1:1, 2:1, 3:1, 1:2, 3:2, 1:3, 2:3, 3:3
//	mushroom_stew = bowl, * | brown_mushroom, * | red_mushroom, *
//
// An ingredient is an item followed by one or more positions. A position
// is "column:row" with each axis 1..3 or '*' (any column / any row), or a
// bare '*' for anywhere in the grid. Items are catalog names or numeric
// ids, optionally followed by "^damage". A negative damage on an anywhere
// ingredient accepts any damage value.
//
// # Diagnostics
//
// A line that fails to parse is dropped and reported as a Diagnostic
// naming the source line and the failing element; the remaining lines
// are still parsed. Parse never fails as a whole.
//
// # Normalization
//
// Fixed coordinates are shifted so the smallest fixed column and row are
// zero, and Width/Height span the fixed coordinates only. Wildcard axes
// are never shifted.
package recipe
