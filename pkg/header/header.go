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

package header

import (
	"time"
)

// APIVersion is the version of every document kind below.
const APIVersion = "craftgrid.nvidia.com/v1alpha1"

// Kind is the type of a craftgrid document.
type Kind string

const (
	KindRecipeCatalog Kind = "RecipeCatalog"
	KindCraftResult   Kind = "CraftResult"
	KindItemCatalog   Kind = "ItemCatalog"
	KindLoadReport    Kind = "LoadReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindRecipeCatalog, KindCraftResult, KindItemCatalog, KindLoadReport:
		return true
	default:
		return false
	}
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata sets one metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the API version.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New returns a header with the options applied.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header is embedded inline in every craftgrid document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetKind returns the kind.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// GetMetadata returns the metadata map.
func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}

// Init resets the header to kind at APIVersion and stamps the current UTC
// time and, when set, the tool version.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata["version"] = version
	}
}
