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

// Package errors provides structured errors with machine-readable codes.
//
// Boundary code (definition sources, grid layouts, HTTP handlers and CLI
// commands) returns *StructuredError so callers can map failures onto HTTP
// status codes and exit codes without string matching:
//
//	data, err := source.Read(ctx, uri)
//	if err != nil {
//	    if errors.IsCode(err, errors.ErrCodeNotFound) {
//	        // ...
//	    }
//	}
//
// The crafting core itself (parsing, matching, the recipe store) never
// returns errors: rejected lines become diagnostics and unmatched grids
// produce an empty item.
package errors
