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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/craftgrid/pkg/errors"
)

const (
	// URIScheme prefixes OCI definition sources.
	URIScheme = "oci://"

	// DefaultTag is used when a reference has no tag.
	DefaultTag = "latest"
)

// Reference names an artifact in a registry.
type Reference struct {
	Registry   string
	Repository string
	Tag        string
}

// ParseReference parses "oci://registry/repository[:tag]". The scheme is
// optional. A missing tag becomes DefaultTag; digests are not accepted.
func ParseReference(uri string) (*Reference, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(uri), URIScheme)
	if raw == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is empty")
	}

	ref, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"OCI reference must use a tag, not a digest", map[string]any{"reference": uri})
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// String returns the oci:// form.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns "registry/repository:tag".
func (r *Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy with a different tag.
func (r *Reference) WithTag(tag string) *Reference {
	out := *r
	out.Tag = tag
	return &out
}

// stripProtocol removes an http(s) scheme from a registry host.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return strings.TrimSuffix(registry, "/")
}
