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

// Package source reads recipe definition text from a source URI.
//
// Supported URIs:
//
//	crafting.txt, /etc/craft/crafting.txt, file:///etc/craft/crafting.txt
//	https://example.com/crafting.txt
//	cm://namespace/name[/key]            (key defaults to crafting.txt)
//	oci://registry/repository[:tag]
//
// Every source is capped at defaults.MaxSourceBytes. Failures are
// *errors.StructuredError values: NOT_FOUND for a missing file, ConfigMap,
// key or artifact, INVALID_REQUEST for malformed URIs, UNAVAILABLE or
// TIMEOUT for transport failures.
package source
