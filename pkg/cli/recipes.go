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

	"github.com/NVIDIA/craftgrid/pkg/store"
)

func recipesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipes",
		EnableShellCompletion: true,
		Usage:                 "Load and print a recipe collection",
		Description: `Load recipe definitions and print the resulting collection in
priority order. Lines that cannot be parsed are dropped and logged with
their line number; the remaining recipes still load.

Use --strict in CI to fail when any line was rejected, and --report to
print the load report with every diagnostic instead of the collection.`,
		Flags: []cli.Flag{
			recipesFlag(),
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail when any definition line is rejected or the source cannot be read",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "print the load report instead of the collection",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			st, report, names, err := loadStore(ctx, cmd)
			if err != nil {
				return err
			}

			var out any = st.Catalog(names, version)
			if cmd.Bool("report") {
				out = report.Document(version)
			}
			if err := writeOutput(ctx, cmd, out); err != nil {
				return err
			}

			if cmd.Bool("strict") && !report.OK() {
				return fmt.Errorf("%d of the recipe definitions in %s were rejected (%d diagnostics)",
					report.Rejected, report.Source, len(report.Diagnostics))
			}
			return nil
		},
	}
}

// sourceError returns an error for a load that could not open its source.
func sourceError(report *store.LoadReport) error {
	for _, d := range report.Diagnostics {
		if d.Line <= 0 {
			return fmt.Errorf("%s", d.String())
		}
	}
	return nil
}
