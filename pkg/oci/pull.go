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

package oci

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/errdef"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	apperrors "github.com/NVIDIA/craftgrid/pkg/errors"
)

// Artifact is a pulled definition file.
type Artifact struct {
	Name   string
	Digest string
	Data   []byte
}

// Pull resolves tag in src and returns the definition layer.
func Pull(ctx context.Context, src oras.ReadOnlyTarget, tag string) (*Artifact, error) {
	desc, err := oras.Resolve(ctx, src, tag, oras.DefaultResolveOptions)
	if err != nil {
		if stderrors.Is(err, errdef.ErrNotFound) {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "OCI artifact not found", err,
				map[string]any{"tag": tag})
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to resolve OCI artifact", err)
	}
	if desc.MediaType != ociv1.MediaTypeImageManifest {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "OCI artifact is not an image manifest",
			map[string]any{"mediaType": desc.MediaType})
	}

	raw, err := content.FetchAll(ctx, src, desc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to fetch manifest", err)
	}
	var manifest ociv1.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode manifest", err)
	}
	if manifest.ArtifactType != ArtifactType {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "OCI artifact does not hold recipe definitions",
			map[string]any{"artifactType": manifest.ArtifactType})
	}

	layer, ok := definitionLayer(manifest.Layers)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI artifact has no definition layer")
	}
	if layer.Size > defaults.MaxSourceBytes {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "recipe definitions too large",
			map[string]any{"size": layer.Size, "maxBytes": defaults.MaxSourceBytes})
	}

	data, err := content.FetchAll(ctx, src, layer)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to fetch definition layer", err)
	}

	name := layer.Annotations[ociv1.AnnotationTitle]
	if name == "" {
		name = DefaultFileName
	}
	return &Artifact{
		Name:   name,
		Digest: desc.Digest.String(),
		Data:   data,
	}, nil
}

func definitionLayer(layers []ociv1.Descriptor) (ociv1.Descriptor, bool) {
	for _, l := range layers {
		if l.MediaType == MediaTypeRecipes {
			return l, true
		}
	}
	return ociv1.Descriptor{}, false
}

// PullRemote pulls ref from its registry.
func PullRemote(ctx context.Context, ref *Reference, opts RemoteOptions) (*Artifact, error) {
	if ref == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPullTimeout)
	defer cancel()

	repo, err := newRepository(stripProtocol(ref.Registry), ref.Repository, opts)
	if err != nil {
		return nil, err
	}

	art, err := Pull(ctx, repo, ref.Tag)
	if err != nil {
		return nil, err
	}
	slog.Debug("recipe definitions pulled",
		"reference", ref.String(),
		"digest", art.Digest,
		"size", len(art.Data))
	return art, nil
}
