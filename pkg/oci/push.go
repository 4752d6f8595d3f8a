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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	apperrors "github.com/NVIDIA/craftgrid/pkg/errors"
)

const (
	// ArtifactType identifies recipe definition artifacts.
	ArtifactType = "application/vnd.nvidia.craftgrid.recipes.v1"

	// MediaTypeRecipes is the layer media type of the definition text.
	MediaTypeRecipes = "application/vnd.nvidia.craftgrid.recipes.v1+text"

	// DefaultFileName is the title used when none is given.
	DefaultFileName = "crafting.txt"
)

// PushOptions describes one definition file to publish.
type PushOptions struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "nvidia/recipes").
	Repository string
	// Tag is required.
	Tag string
	// FileName becomes the layer title annotation.
	FileName string
	// Data is the definition text.
	Data []byte
	// Annotations are added to the manifest.
	Annotations map[string]string
	// PlainHTTP uses HTTP instead of HTTPS.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult describes a published artifact.
type PushResult struct {
	Digest    string `json:"digest" yaml:"digest"`
	Reference string `json:"reference" yaml:"reference"`
	Size      int64  `json:"size" yaml:"size"`
}

// Pack stores data as a definition artifact in target and tags the
// manifest.
func Pack(ctx context.Context, target oras.Target, opts PushOptions) (ociv1.Descriptor, error) {
	if opts.Tag == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}
	if len(opts.Data) == 0 {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "recipe definitions are empty")
	}
	if len(opts.Data) > defaults.MaxSourceBytes {
		return ociv1.Descriptor{}, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"recipe definitions too large", map[string]any{"size": len(opts.Data), "maxBytes": defaults.MaxSourceBytes})
	}

	name := opts.FileName
	if name == "" {
		name = DefaultFileName
	}

	layer, err := oras.PushBytes(ctx, target, MediaTypeRecipes, opts.Data)
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to store definition layer", err)
	}
	layer.Annotations = map[string]string{ociv1.AnnotationTitle: name}

	manifest, err := oras.PackManifest(ctx, target, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: opts.Annotations,
	})
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	if err := target.Tag(ctx, manifest, opts.Tag); err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}
	return manifest, nil
}

// Push packs the definition file into an in-memory store and copies it to
// the remote repository.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	registryHost := stripProtocol(opts.Registry)
	refString := fmt.Sprintf("%s/%s:%s", registryHost, opts.Repository, opts.Tag)
	if _, err := reference.ParseNormalizedNamed(refString); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid image reference %q", refString), err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	store := memory.New()
	if _, err := Pack(ctx, store, opts); err != nil {
		return nil, err
	}

	repo, err := newRepository(registryHost, opts.Repository, RemoteOptions{
		PlainHTTP:   opts.PlainHTTP,
		InsecureTLS: opts.InsecureTLS,
	})
	if err != nil {
		return nil, err
	}

	desc, err := oras.Copy(ctx, store, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}

	slog.Info("recipe definitions published",
		"reference", refString,
		"digest", desc.Digest.String(),
		"size", len(opts.Data))

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
		Size:      int64(len(opts.Data)),
	}, nil
}

// RemoteOptions configures registry access.
type RemoteOptions struct {
	PlainHTTP   bool
	InsecureTLS bool
}

func newRepository(registryHost, repository string, opts RemoteOptions) (*remote.Repository, error) {
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", registryHost, repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)
	return repo, nil
}

// createAuthClient uses Docker credentials when available.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in
	}

	c := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		c.Credential = credentials.Credential(credStore)
	}
	return c
}
