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
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftgrid/pkg/header"
	"github.com/NVIDIA/craftgrid/pkg/item"
)

// itemCatalog is the printed form of an item registry.
type itemCatalog struct {
	header.Header `json:",inline" yaml:",inline"`
	item.Catalog  `json:",inline" yaml:",inline"`
}

func (c *itemCatalog) TableHeader() []string {
	return []string{"ID", "NAME", "ALIASES"}
}

func (c *itemCatalog) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Items))
	for _, d := range c.Items {
		rows = append(rows, []string{strconv.Itoa(int(d.ID)), d.Name, strings.Join(d.Aliases, ",")})
	}
	return rows
}

func itemsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "items",
		EnableShellCompletion: true,
		Usage:                 "Print the item catalog used to resolve names",
		Description: `Print the item names, ids and aliases recipe definitions and grid
layouts may use. Names are matched case-insensitively; a plain
non-negative number is taken as an item id.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			reg, err := itemRegistry(cmd)
			if err != nil {
				return err
			}

			out := &itemCatalog{Catalog: item.Catalog{Items: reg.Definitions()}}
			out.Init(header.KindItemCatalog, version)
			return writeOutput(ctx, cmd, out)
		},
	}
}
