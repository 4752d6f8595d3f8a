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
	"path"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftgrid/pkg/errors"
	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/oci"
	"github.com/NVIDIA/craftgrid/pkg/recipe"
	"github.com/NVIDIA/craftgrid/pkg/source"
)

// publishResult describes a published definition file.
type publishResult struct {
	Target  string `json:"target" yaml:"target"`
	Digest  string `json:"digest,omitempty" yaml:"digest,omitempty"`
	Size    int    `json:"size" yaml:"size"`
	Recipes int    `json:"recipes" yaml:"recipes"`
}

// publisher copies definition text from a source to an oci:// or cm:// target.
type publisher struct {
	reader *source.Reader
	names  *item.Registry
	push   func(ctx context.Context, opts oci.PushOptions) (*oci.PushResult, error)

	force       bool
	plainHTTP   bool
	insecureTLS bool
}

func (p *publisher) publish(ctx context.Context, from, to string) (*publishResult, error) {
	data, err := p.reader.Read(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", from, err)
	}

	recipes, diags := recipe.NewParser(p.names).ParseString(from, string(data))
	if len(diags) > 0 && !p.force {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("%d definition lines rejected, first: %s (use --force to publish anyway)", len(diags), diags[0].String()),
			map[string]any{"source": from})
	}

	res := &publishResult{
		Target:  to,
		Size:    len(data),
		Recipes: len(recipes),
	}

	switch source.Scheme(to) {
	case "oci":
		ref, err := oci.ParseReference(to)
		if err != nil {
			return nil, err
		}
		pushed, err := p.push(ctx, oci.PushOptions{
			Registry:   ref.Registry,
			Repository: ref.Repository,
			Tag:        ref.Tag,
			FileName:   fileName(from),
			Data:       data,
			Annotations: map[string]string{
				ociv1.AnnotationCreated: time.Now().UTC().Format(time.RFC3339),
				ociv1.AnnotationVersion: version,
				ociv1.AnnotationSource:  from,
			},
			PlainHTTP:   p.plainHTTP,
			InsecureTLS: p.insecureTLS,
		})
		if err != nil {
			return nil, err
		}
		res.Target = ref.String()
		res.Digest = pushed.Digest
	case "configmap":
		if err := p.reader.PublishConfigMap(ctx, to, data, version); err != nil {
			return nil, err
		}
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"publish target must be oci://registry/repository[:tag] or cm://namespace/name[/key]",
			map[string]any{"target": to})
	}
	return res, nil
}

// fileName is the base name of a path or URL source.
func fileName(from string) string {
	if source.Scheme(from) != "file" && source.Scheme(from) != "http" {
		return oci.DefaultFileName
	}
	base := path.Base(from)
	if base == "." || base == "/" {
		return oci.DefaultFileName
	}
	return base
}

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Publish recipe definitions to an OCI registry or a ConfigMap",
		Description: `Validate recipe definitions and publish them unchanged, so craftd and
craftctl can load them with --recipes.

  craftctl publish --recipes crafting.txt --to oci://ghcr.io/nvidia/recipes:v1
  craftctl publish --recipes crafting.txt --to cm://games/recipes

Registry credentials come from the Docker credential store. Publishing
fails when any definition line is rejected unless --force is set.`,
		Flags: []cli.Flag{
			recipesFlag(),
			&cli.StringFlag{
				Name:     "to",
				Required: true,
				Usage:    "target: oci://registry/repository[:tag] or cm://namespace/name[/key]",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "publish even when definition lines are rejected",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "use HTTP instead of HTTPS for the registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "skip registry TLS certificate verification",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			names, err := itemRegistry(cmd)
			if err != nil {
				return err
			}

			p := &publisher{
				reader:      sourceReader(cmd),
				names:       names,
				push:        oci.Push,
				force:       cmd.Bool("force"),
				plainHTTP:   cmd.Bool("plain-http"),
				insecureTLS: cmd.Bool("insecure-tls"),
			}
			res, err := p.publish(ctx, cmd.String("recipes"), cmd.String("to"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, res)
		},
	}
}
