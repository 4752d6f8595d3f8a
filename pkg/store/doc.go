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

// Package store owns the active recipe catalog and answers crafting
// queries against it.
//
// A Store is loaded from a definition source and then queried many
// times:
//
//	s := store.New()
//	report := s.Load(ctx, "crafting.txt")
//	for _, d := range report.Diagnostics {
//	    fmt.Println(d)
//	}
//
//	result := s.Offer(cells, 3, 3) // what would be crafted
//	result = s.Craft(cells, 3, 3)  // craft it, consuming ingredients
//
// Loading never fails: an unreadable source installs an empty catalog and
// reports one diagnostic, and rejected lines are reported and skipped.
// Reloads swap the whole catalog atomically, so a query in flight sees
// either the old or the new catalog. Offer never touches the grid; Craft
// decrements every consumed cell by the slot's count and clears cells
// that reach zero.
package store
