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

// Package oci publishes recipe definition files as OCI artifacts and pulls
// them back.
//
// An artifact is an OCI 1.1 image manifest with artifact type
// ArtifactType and a single layer of media type MediaTypeRecipes holding
// the definition text; the layer's title annotation carries the file name.
//
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    Registry:   "ghcr.io",
//	    Repository: "nvidia/recipes",
//	    Tag:        "v1",
//	    FileName:   "crafting.txt",
//	    Data:       data,
//	})
//
// Definitions are read back through an oci:// source URI:
//
//	ref, err := oci.ParseReference("oci://ghcr.io/nvidia/recipes:v1")
//	art, err := oci.PullRemote(ctx, ref, oci.RemoteOptions{})
//
// Registry credentials come from the Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
package oci
