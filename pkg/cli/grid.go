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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftgrid/pkg/grid"
	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/serializer"
	"github.com/NVIDIA/craftgrid/pkg/store"
)

const gridDescription = `The grid is a layout document in JSON or YAML, cells in row-major
order. Missing trailing cells are empty, count defaults to 1 and damage to 0:

  width: 3
  height: 3
  cells:
    - null
    - {item: planks, count: 2}
    - null
    - null
    - {item: planks}`

func offerCmd() *cli.Command {
	return &cli.Command{
		Name:                  "offer",
		EnableShellCompletion: true,
		Usage:                 "Show what a grid would craft without changing it",
		Description:           gridDescription,
		Flags: []cli.Flag{
			recipesFlag(),
			gridFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, names, layout, cells, err := prepareGrid(ctx, cmd)
			if err != nil {
				return err
			}

			res, _ := st.OfferResolved(cells, layout.Width, layout.Height)
			return writeOutput(ctx, cmd, store.NewOutcome(res, names, version))
		},
	}
}

func craftCmd() *cli.Command {
	return &cli.Command{
		Name:                  "craft",
		EnableShellCompletion: true,
		Usage:                 "Craft from a grid and print the result and the remaining grid",
		Description:           gridDescription,
		Flags: []cli.Flag{
			recipesFlag(),
			gridFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, names, layout, cells, err := prepareGrid(ctx, cmd)
			if err != nil {
				return err
			}

			res, _ := st.CraftResolved(cells, layout.Width, layout.Height)
			out := store.NewOutcome(res, names, version)
			out.Grid = grid.FromItems(cells, layout.Width, layout.Height, names)
			return writeOutput(ctx, cmd, out)
		},
	}
}

// prepareGrid loads the recipes and the --grid layout shared by offer and craft.
func prepareGrid(ctx context.Context, cmd *cli.Command) (*store.Store, *item.Registry, *grid.Layout, []item.Item, error) {
	if _, err := parseOutputFormat(cmd); err != nil {
		return nil, nil, nil, nil, err
	}

	st, report, names, err := loadStore(ctx, cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := sourceError(report); err != nil {
		return nil, nil, nil, nil, err
	}

	path := cmd.String("grid")
	layout, err := serializer.FromFile[grid.Layout](ctx, path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load grid from %q: %w", path, err)
	}

	cells, err := layout.Items(names)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("invalid grid %q: %w", path, err)
	}
	return st, names, layout, cells, nil
}
