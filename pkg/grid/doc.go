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

// Package grid converts caller-facing crafting layouts into item cells
// and computes the bounding box the matcher works on.
//
// A Layout is the JSON/YAML form of a crafting grid: explicit width and
// height plus row-major cells, where a null cell is empty and omitted
// count and damage default to 1 and 0:
//
//	width: 1
//	height: 3
//	cells:
//	  - {item: planks}
//	  - {item: planks, count: 2}
//	  - null
//
// Items resolves names into a flat []item.Item with stride Width, which
// is the buffer recipe matching and crafting operate on.
package grid
