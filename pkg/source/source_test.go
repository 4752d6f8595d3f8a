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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"oras.land/oras-go/v2/content/memory"

	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/oci"
)

const definitions = "WOOD,4=LOG,1:1\n"

func TestRead_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crafting.txt")
	require.NoError(t, os.WriteFile(path, []byte(definitions), 0o600))

	data, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, definitions, string(data))

	data, err = Read(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, definitions, string(data))

	_, err = Read(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = Read(context.Background(), "  ")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRead_FileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 4<<20+1), 0o600))

	_, err := Read(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRead_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crafting.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(definitions))
	}))
	defer srv.Close()

	data, err := Read(context.Background(), srv.URL+"/crafting.txt")
	require.NoError(t, err)
	assert.Equal(t, definitions, string(data))

	_, err = Read(context.Background(), srv.URL+"/other.txt")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    ConfigMapURI
		wantErr bool
	}{
		{uri: "cm://craft/recipes", want: ConfigMapURI{Namespace: "craft", Name: "recipes", Key: DefaultConfigMapKey}},
		{uri: "cm://craft/recipes/extra.txt", want: ConfigMapURI{Namespace: "craft", Name: "recipes", Key: "extra.txt"}},
		{uri: "cm://craft", wantErr: true},
		{uri: "cm:///recipes", wantErr: true},
		{uri: "cm://craft/", wantErr: true},
		{uri: "cm://a/b/c/d", wantErr: true},
		{uri: "craft/recipes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseConfigMapURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "cm://craft/recipes/crafting.txt",
		ConfigMapURI{Namespace: "craft", Name: "recipes", Key: "crafting.txt"}.String())
}

func TestRead_ConfigMap(t *testing.T) {
	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "recipes", Namespace: "craft"},
		Data: map[string]string{
			DefaultConfigMapKey: definitions,
			"tools.txt":         "stick=planks,*\n",
		},
	})
	r := NewReader(WithKubeClient(cs))

	data, err := r.Read(context.Background(), "cm://craft/recipes")
	require.NoError(t, err)
	assert.Equal(t, definitions, string(data))

	data, err = r.Read(context.Background(), "cm://craft/recipes/tools.txt")
	require.NoError(t, err)
	assert.Equal(t, "stick=planks,*\n", string(data))

	_, err = r.Read(context.Background(), "cm://craft/recipes/missing.txt")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = r.Read(context.Background(), "cm://craft/absent")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestPublishConfigMap(t *testing.T) {
	cs := fake.NewClientset()

	var patch []byte
	cs.PrependReactor("patch", "configmaps", func(action k8stesting.Action) (bool, runtime.Object, error) {
		pa, ok := action.(k8stesting.PatchAction)
		require.True(t, ok)
		assert.Equal(t, types.ApplyPatchType, pa.GetPatchType())
		assert.Equal(t, "craft", pa.GetNamespace())
		assert.Equal(t, "recipes", pa.GetName())
		patch = pa.GetPatch()
		return true, &corev1.ConfigMap{}, nil
	})

	r := NewReader(WithKubeClient(cs))
	require.NoError(t, r.PublishConfigMap(context.Background(), "cm://craft/recipes", []byte(definitions), "v1.0.0"))
	assert.Contains(t, string(patch), DefaultConfigMapKey)
	assert.Contains(t, string(patch), "WOOD,4=LOG,1:1")
	assert.Contains(t, string(patch), "app.kubernetes.io/version")

	err := r.PublishConfigMap(context.Background(), "cm://bad", []byte(definitions), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRead_OCI(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := oci.Pack(ctx, store, oci.PushOptions{Tag: "v1", Data: []byte(definitions)})
	require.NoError(t, err)

	var seen *oci.Reference
	r := NewReader(WithOCIPuller(func(ctx context.Context, ref *oci.Reference) (*oci.Artifact, error) {
		seen = ref
		return oci.Pull(ctx, store, ref.Tag)
	}))

	data, err := r.Read(ctx, "oci://ghcr.io/nvidia/recipes:v1")
	require.NoError(t, err)
	assert.Equal(t, definitions, string(data))
	require.NotNil(t, seen)
	assert.Equal(t, "ghcr.io", seen.Registry)

	_, err = r.Read(ctx, "oci://ghcr.io/nvidia/recipes:v2")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = r.Read(ctx, "oci://Bad Ref")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestScheme(t *testing.T) {
	tests := map[string]string{
		"crafting.txt":             "file",
		"file:///etc/crafting.txt": "file",
		"https://example.com/a":    "http",
		"cm://ns/name":             "configmap",
		"oci://ghcr.io/a/b:v1":     "oci",
	}
	for uri, want := range tests {
		assert.Equal(t, want, Scheme(uri), uri)
	}
}
