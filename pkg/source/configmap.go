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
	"log/slog"
	"sort"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/k8s/client"
)

// FieldManager owns the fields craftctl applies to ConfigMaps.
const FieldManager = "craftctl"

// ConfigMapURI is a parsed cm://namespace/name[/key].
type ConfigMapURI struct {
	Namespace string
	Name      string
	Key       string
}

func (u ConfigMapURI) String() string {
	return fmt.Sprintf("%s%s/%s/%s", ConfigMapScheme, u.Namespace, u.Name, u.Key)
}

// ParseConfigMapURI parses cm://namespace/name[/key]. A missing key
// becomes DefaultConfigMapKey.
func ParseConfigMapURI(uri string) (ConfigMapURI, error) {
	if !strings.HasPrefix(uri, ConfigMapScheme) {
		return ConfigMapURI{}, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI: must start with %s", ConfigMapScheme))
	}

	parts := strings.Split(strings.TrimPrefix(uri, ConfigMapScheme), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return ConfigMapURI{}, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ConfigMap URI format: expected %snamespace/name[/key], got %s", ConfigMapScheme, uri))
	}

	u := ConfigMapURI{
		Namespace: strings.TrimSpace(parts[0]),
		Name:      strings.TrimSpace(parts[1]),
		Key:       DefaultConfigMapKey,
	}
	if len(parts) == 3 {
		u.Key = strings.TrimSpace(parts[2])
	}
	if u.Namespace == "" || u.Name == "" || u.Key == "" {
		return ConfigMapURI{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid ConfigMap URI: namespace, name and key cannot be empty", map[string]any{"uri": uri})
	}
	return u, nil
}

func (r *Reader) kubeClient() (client.Interface, error) {
	if r.kube != nil {
		return r.kube, nil
	}
	c, _, err := client.GetKubeClientWithConfig(r.kubeconfig)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to get kubernetes client", err)
	}
	return c, nil
}

func (r *Reader) readConfigMap(ctx context.Context, uri string) ([]byte, error) {
	u, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	kube, err := r.kubeClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := kube.CoreV1().ConfigMaps(u.Namespace).Get(ctx, u.Name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "ConfigMap not found", err,
				map[string]any{"namespace": u.Namespace, "name": u.Name})
		}
		if apierrors.IsUnauthorized(err) || apierrors.IsForbidden(err) {
			return nil, errors.Wrap(errors.ErrCodeUnauthorized, "ConfigMap access denied", err)
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to get ConfigMap %s/%s", u.Namespace, u.Name), err)
	}

	data, ok := cm.Data[u.Key]
	if !ok {
		keys := make([]string, 0, len(cm.Data))
		for k := range cm.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "ConfigMap has no recipe definitions",
			map[string]any{"namespace": u.Namespace, "name": u.Name, "key": u.Key, "keys": keys})
	}
	if len(data) > defaults.MaxSourceBytes {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "recipe source too large",
			map[string]any{"uri": uri, "size": len(data)})
	}

	slog.Debug("read recipe definitions from ConfigMap",
		"namespace", u.Namespace,
		"name", u.Name,
		"key", u.Key,
		"size", len(data))
	return []byte(data), nil
}

// PublishConfigMap stores data under the URI's key with server-side apply,
// creating the ConfigMap when needed.
func (r *Reader) PublishConfigMap(ctx context.Context, uri string, data []byte, version string) error {
	u, err := ParseConfigMapURI(uri)
	if err != nil {
		return err
	}
	if len(data) > defaults.MaxSourceBytes {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "recipe definitions too large",
			map[string]any{"size": len(data)})
	}
	kube, err := r.kubeClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	if version == "" {
		version = "unknown"
	}
	cm := accorev1.ConfigMap(u.Name, u.Namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "craftgrid",
			"app.kubernetes.io/component": "recipes",
			"app.kubernetes.io/version":   version,
		}).
		WithAnnotations(map[string]string{
			"craftgrid.nvidia.com/published": time.Now().UTC().Format(time.RFC3339),
		}).
		WithData(map[string]string{u.Key: string(data)})

	slog.Info("applying ConfigMap",
		"namespace", u.Namespace,
		"name", u.Name,
		"key", u.Key)

	if _, err := kube.CoreV1().ConfigMaps(u.Namespace).Apply(ctx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	}); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "failed to apply ConfigMap", err)
	}
	return nil
}
