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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/craftgrid/pkg/logging"
)

const (
	name           = "craftctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs craftctl with the process arguments and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "craftgrid - recipe matching for crafting grids",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			logLevelFlag(),
			itemsFlag(),
			kubeconfigFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			recipesCmd(),
			offerCmd(),
			craftCmd(),
			itemsCmd(),
			publishCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			commandLister(ctx, cmd)
			return nil
		},
	}
}

// commandLister prints the visible subcommands of cmd.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil || len(cmd.Commands) == 0 {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", cmd.Name)
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", c.Name, c.Usage)
	}
}
