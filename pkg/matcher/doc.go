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

// Package matcher finds the recipe a crafting grid satisfies.
//
// Find crops the grid to its non-empty cells, skips recipes larger than
// the crop, and tries every offset of each remaining recipe with the
// column offset outer and the row offset inner. The first recipe and
// offset that match win, so catalog order is match priority.
//
// At an offset, fixed slots must find their item at the shifted cell with
// at least the required count; a slot damage of zero or less ignores the
// cell's damage. Wildcard slots are then bound greedily in stored order to
// the first unused cell (columns outer, rows inner) whose type matches;
// here only a negative slot damage ignores the cell's damage. A slot fixed
// on one axis scans only that column or row, at its stored coordinate.
// Every non-empty cell of the crop must be claimed by some slot.
//
// Greedy binding can miss layouts a full assignment would accept, for
// example a row-wildcard slot claiming the cell a later column-wildcard
// slot needed.
package matcher
