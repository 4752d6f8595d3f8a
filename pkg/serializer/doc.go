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

// Package serializer encodes and decodes craftgrid documents as JSON,
// YAML or text tables, and fetches documents over HTTP.
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, catalog); err != nil {
//	    return err
//	}
//
// Table output uses the Tabular interface when the value implements it
// and otherwise flattens the value into sorted FIELD/VALUE rows.
//
// # Reading
//
// FromFile reads a local path or http(s) URL and picks the format from
// the extension:
//
//	layout, err := serializer.FromFile[grid.Layout](ctx, "grid.yaml")
//
// Table format is write-only.
//
// # HTTP
//
// RespondJSON writes API responses. HttpReader fetches remote documents
// with bounded timeouts and body size; failures carry structured error
// codes (NOT_FOUND for 404, UNAUTHORIZED for 401/403).
package serializer
