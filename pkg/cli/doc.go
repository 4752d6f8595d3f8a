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

// Package cli implements craftctl, the command-line interface for craftgrid.
//
// # Commands
//
// recipes - Load and print a recipe collection:
//
//	craftctl recipes --recipes crafting.txt [--strict] [--report]
//
// Rejected definition lines are logged as warnings. --strict fails when
// any line was rejected; --report prints the load report instead of the
// collection.
//
// offer - Show what a grid would craft:
//
//	craftctl offer --recipes crafting.txt --grid grid.yaml
//
// craft - Craft from a grid and print the remaining grid:
//
//	craftctl craft --recipes crafting.txt --grid grid.yaml -o after.yaml
//
// items - Print the item catalog:
//
//	craftctl items [--items custom-items.yaml]
//
// publish - Publish a definition file:
//
//	craftctl publish --recipes crafting.txt --to oci://ghcr.io/nvidia/recipes:v1
//	craftctl publish --recipes crafting.txt --to cm://games/recipes
//
// # Sources
//
// --recipes accepts a local path, an http(s) URL, a ConfigMap URI
// (cm://namespace/name[/key]) or an OCI reference (oci://registry/repository[:tag]).
// --grid accepts a local path or an http(s) URL in JSON or YAML.
//
// # Global Flags
//
//	--output, -o     Output file path (default: stdout)
//	--format, -t     Output format: yaml, json, table (default: yaml)
//	--items          Item catalog YAML replacing the embedded one (env: CRAFT_ITEMS)
//	--kubeconfig, -k Kubeconfig for cm:// sources (env: KUBECONFIG)
//	--log-level      Log level: debug, info, warn, error (env: LOG_LEVEL)
package cli
