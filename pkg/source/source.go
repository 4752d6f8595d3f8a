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

package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/k8s/client"
	"github.com/NVIDIA/craftgrid/pkg/oci"
	"github.com/NVIDIA/craftgrid/pkg/serializer"
)

const (
	FileScheme      = "file://"
	ConfigMapScheme = "cm://"

	// DefaultConfigMapKey is the ConfigMap data key read when none is given.
	DefaultConfigMapKey = "crafting.txt"
)

// Option configures a Reader.
type Option func(*Reader)

// WithKubeconfig sets the kubeconfig used for cm:// sources.
func WithKubeconfig(path string) Option {
	return func(r *Reader) {
		r.kubeconfig = path
	}
}

// WithKubeClient uses c for cm:// sources instead of building one.
func WithKubeClient(c client.Interface) Option {
	return func(r *Reader) {
		r.kube = c
	}
}

// WithHTTPReader sets the reader for http(s) sources.
func WithHTTPReader(h *serializer.HttpReader) Option {
	return func(r *Reader) {
		r.http = h
	}
}

// WithOCIPuller replaces registry access for oci:// sources.
func WithOCIPuller(p func(ctx context.Context, ref *oci.Reference) (*oci.Artifact, error)) Option {
	return func(r *Reader) {
		r.pull = p
	}
}

// WithRemoteOptions configures registry access for oci:// sources.
func WithRemoteOptions(o oci.RemoteOptions) Option {
	return func(r *Reader) {
		r.remote = o
	}
}

// Reader resolves source URIs. It is safe for concurrent use.
type Reader struct {
	kubeconfig string
	kube       client.Interface
	http       *serializer.HttpReader
	remote     oci.RemoteOptions
	pull       func(ctx context.Context, ref *oci.Reference) (*oci.Artifact, error)
}

// NewReader returns a Reader with the options applied.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.http == nil {
		r.http = serializer.NewHttpReader(serializer.WithMaxBytes(defaults.MaxSourceBytes))
	}
	if r.pull == nil {
		r.pull = func(ctx context.Context, ref *oci.Reference) (*oci.Artifact, error) {
			return oci.PullRemote(ctx, ref, r.remote)
		}
	}
	return r
}

// Read resolves uri with a default Reader.
func Read(ctx context.Context, uri string) ([]byte, error) {
	return NewReader().Read(ctx, uri)
}

// Read returns the definition text behind uri.
func (r *Reader) Read(ctx context.Context, uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "source is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.SourceLoadTimeout)
	defer cancel()

	slog.Debug("reading recipe source", "source", uri, "scheme", Scheme(uri))

	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return r.http.ReadWithContext(ctx, uri)
	case strings.HasPrefix(uri, ConfigMapScheme):
		return r.readConfigMap(ctx, uri)
	case strings.HasPrefix(uri, oci.URIScheme):
		ref, err := oci.ParseReference(uri)
		if err != nil {
			return nil, err
		}
		art, err := r.pull(ctx, ref)
		if err != nil {
			return nil, err
		}
		return art.Data, nil
	default:
		return readFile(strings.TrimPrefix(uri, FileScheme))
	}
}

// Scheme names the kind of source: file, http, configmap or oci.
func Scheme(uri string) string {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return "http"
	case strings.HasPrefix(uri, ConfigMapScheme):
		return "configmap"
	case strings.HasPrefix(uri, oci.URIScheme):
		return "oci"
	default:
		return "file"
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "recipe source not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to open recipe source", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, defaults.MaxSourceBytes+1))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to read recipe source", err,
			map[string]any{"path": path})
	}
	if len(data) > defaults.MaxSourceBytes {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe source exceeds %d bytes", defaults.MaxSourceBytes), map[string]any{"path": path})
	}
	return data, nil
}
