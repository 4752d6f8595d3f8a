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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format from a file
// extension: .json, .yaml/.yml and .table/.txt. Unknown extensions
// default to JSON. Matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// isRemote reports whether path is an http(s) URL.
func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Reader decodes JSON or YAML from an input. Close must be called for
// readers created by NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a reader decoding input in format. Table format is
// write-only. If input is an io.Closer, Close closes it.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

func readable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// NewFileReader returns a reader for a local file or an http(s) URL.
// Remote content is fetched with the default HttpReader.
func NewFileReader(ctx context.Context, format Format, filePath string) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}

	if isRemote(filePath) {
		data, err := NewHttpReader().ReadWithContext(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// NewFileReaderAuto is NewFileReader with the format taken from the path.
func NewFileReaderAuto(ctx context.Context, filePath string) (*Reader, error) {
	return NewFileReader(ctx, FormatFromPath(filePath), filePath)
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the input. It is safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile reads a local file or http(s) URL and decodes it into a new T.
// The format comes from the path extension.
//
//	layout, err := FromFile[grid.Layout](ctx, "grid.yaml")
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	format := FormatFromPath(path)
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	ser, err := NewFileReader(ctx, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := ser.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var v T
	if err := ser.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	return &v, nil
}
