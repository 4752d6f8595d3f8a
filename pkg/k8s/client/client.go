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
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is the client surface used by callers; the fake clientset
// satisfies it in tests.
type Interface = kubernetes.Interface

type cached struct {
	once   sync.Once
	client Interface
	config *rest.Config
	err    error
}

var (
	mu      sync.Mutex
	clients = map[string]*cached{}
)

// GetKubeClient returns the shared client for the default kubeconfig.
func GetKubeClient() (Interface, *rest.Config, error) {
	return GetKubeClientWithConfig("")
}

// GetKubeClientWithConfig returns the shared client for kubeconfig,
// building it on first use. A failed build is cached as well.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	mu.Lock()
	c, ok := clients[kubeconfig]
	if !ok {
		c = &cached{}
		clients[kubeconfig] = c
	}
	mu.Unlock()

	c.once.Do(func() {
		var cs *kubernetes.Clientset
		cs, c.config, c.err = BuildKubeClient(kubeconfig)
		if c.err == nil {
			c.client = cs
		}
	})
	return c.client, c.config, c.err
}

// BuildKubeClient builds a new client without caching.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	kubeconfig = resolveKubeconfig(kubeconfig)

	var (
		config *rest.Config
		err    error
	)
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

// resolveKubeconfig returns the kubeconfig path to use, or "" for in-cluster.
func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	clients = map[string]*cached{}
}
