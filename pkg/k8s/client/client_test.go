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

package client

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKubeClient_InvalidPaths(t *testing.T) {
	tmp := t.TempDir()
	garbage := filepath.Join(tmp, "kubeconfig")
	require.NoError(t, os.WriteFile(garbage, []byte("not: [a kubeconfig"), 0o600))

	tests := []struct {
		name string
		arg  string
		env  string
	}{
		{name: "explicit missing path", arg: filepath.Join(tmp, "missing")},
		{name: "env missing path", env: filepath.Join(tmp, "missing-env")},
		{name: "explicit garbage file", arg: garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KUBECONFIG", tt.env)

			_, _, err := BuildKubeClient(tt.arg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to build kube config")
		})
	}
}

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv("KUBECONFIG", "/from/env")
	assert.Equal(t, "/explicit", resolveKubeconfig("/explicit"))
	assert.Equal(t, "/from/env", resolveKubeconfig(""))
}

func TestGetKubeClientWithConfig_CachesResult(t *testing.T) {
	reset()
	t.Cleanup(reset)

	path := filepath.Join(t.TempDir(), "missing")

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = GetKubeClientWithConfig(path)
		}()
	}
	wg.Wait()

	require.Error(t, errs[0])
	for i := 1; i < n; i++ {
		assert.Same(t, errs[0], errs[i])
	}
}
