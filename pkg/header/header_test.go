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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{KindRecipeCatalog, KindCraftResult, KindItemCatalog, KindLoadReport} {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, Kind("Snapshot").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindRecipeCatalog),
		WithAPIVersion(APIVersion),
		WithMetadata("source", "crafting.txt"),
	)
	assert.Equal(t, KindRecipeCatalog, h.GetKind())
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "crafting.txt", h.GetMetadata()["source"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestHeader_Init(t *testing.T) {
	h := New(WithMetadata("stale", "yes"))
	h.Init(KindCraftResult, "v1.2.3")

	assert.Equal(t, KindCraftResult, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindItemCatalog, "")
	assert.NotContains(t, h.Metadata, "version")
}
