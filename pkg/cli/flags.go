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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/serializer"
	"github.com/NVIDIA/craftgrid/pkg/source"
	"github.com/NVIDIA/craftgrid/pkg/store"
)

// Flags are built per command so each run starts from defaults.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func recipesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "recipes",
		Aliases: []string{"r"},
		Value:   "crafting.txt",
		Sources: cli.EnvVars("CRAFT_RECIPES"),
		Usage:   "recipe definitions: file path, http(s) URL, cm://namespace/name[/key] or oci://registry/repository[:tag]",
	}
}

func gridFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "grid",
		Aliases:  []string{"g"},
		Required: true,
		Usage:    "grid layout file path or http(s) URL (JSON or YAML)",
	}
}

func itemsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "items",
		Sources: cli.EnvVars("CRAFT_ITEMS"),
		Usage:   "item catalog YAML replacing the embedded catalog",
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Sources: cli.EnvVars("KUBECONFIG"),
		Usage:   "kubeconfig for cm:// sources (default: in-cluster or ~/.kube/config)",
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Usage:   "log level (debug, info, warn, error)",
	}
}

// parseOutputFormat returns the --format value or an error when unsupported.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// writeOutput serializes v to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}

// itemRegistry returns the catalog named by --items, or the embedded one.
func itemRegistry(cmd *cli.Command) (*item.Registry, error) {
	path := cmd.String("items")
	if path == "" {
		return item.Default(), nil
	}
	reg, err := item.LoadRegistryFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load item catalog %q: %w", path, err)
	}
	return reg, nil
}

func sourceReader(cmd *cli.Command) *source.Reader {
	return source.NewReader(source.WithKubeconfig(cmd.String("kubeconfig")))
}

// loadStore loads --recipes into a new store.
func loadStore(ctx context.Context, cmd *cli.Command) (*store.Store, *store.LoadReport, *item.Registry, error) {
	names, err := itemRegistry(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.New(
		store.WithRegistry(names),
		store.WithSourceOpener(sourceReader(cmd).Read),
	)
	report := st.Load(ctx, cmd.String("recipes"))
	return st, report, names, nil
}
