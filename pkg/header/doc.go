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

// Package header provides the common header carried by craftgrid documents.
//
// Every document the CLI prints and the API returns starts with a kind, an
// API version and free-form metadata:
//
//	h := header.New(
//	    header.WithKind(header.KindRecipeCatalog),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("source", "crafting.txt"),
//	)
//
// Init stamps a header with the current UTC time and the tool version:
//
//	kind: RecipeCatalog
//	apiVersion: craftgrid.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2026-01-02T10:30:00Z"
//	  version: v0.4.0
package header
