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

// Package defaults centralizes timeouts and limits used across craftgrid.
//
// Timeouts are grouped by component: source loading (files, HTTP,
// ConfigMaps, OCI registries), HTTP handlers, and the HTTP server itself.
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SourceLoadTimeout)
//	defer cancel()
//
// Limits bound the size of untrusted input: definition sources and grid
// layouts posted to craftd.
package defaults
