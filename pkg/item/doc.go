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

// Package item defines item stacks and the item-name catalog used to
// resolve names in recipe definitions and grid layouts.
//
// An Item is a value: a type id, a count and a damage (variant) value.
// A cell is empty when its type is not positive or its count is not
// positive; Empty returns the canonical empty value.
//
// Names resolve through a Registry. The default registry is embedded
// (items.yaml) and maps case-insensitive names and aliases onto numeric
// ids; any non-negative decimal string is also accepted as an id:
//
//	reg := item.Default()
//	id, err := reg.Resolve("Planks") // 5
//	id, err = reg.Resolve("280")     // 280 (stick)
//
// Unknown names fail with an *UnknownItemError that lists close matches.
package item
