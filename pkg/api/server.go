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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/craftgrid/pkg/item"
	"github.com/NVIDIA/craftgrid/pkg/logging"
	"github.com/NVIDIA/craftgrid/pkg/server"
	"github.com/NVIDIA/craftgrid/pkg/source"
	"github.com/NVIDIA/craftgrid/pkg/store"
)

const (
	name           = "craftd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/craftgrid/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve runs craftd until SIGINT or SIGTERM.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg := configFromEnv()
	h, err := newHandler(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithRateLimit(cfg.RateLimit, cfg.RateLimitBurst),
	)

	if err := run(ctx, s, h, hup); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// newHandler builds the item catalog and store from cfg and performs the
// initial load. Rejected lines and unreadable sources are not fatal.
func newHandler(cfg Config) (*Handler, error) {
	names := item.Default()
	if cfg.Items != "" {
		reg, err := item.LoadRegistryFile(cfg.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to load item catalog: %w", err)
		}
		names = reg
	}

	reader := source.NewReader(source.WithKubeconfig(cfg.Kubeconfig))
	st := store.New(
		store.WithRegistry(names),
		store.WithSourceOpener(reader.Read),
	)

	h := NewHandler(st, names, cfg.Recipes, version)
	report := h.Reload(context.Background())
	if !report.OK() {
		slog.Warn("initial recipe load had diagnostics",
			"source", report.Source,
			"recipes", report.Recipes,
			"diagnostics", len(report.Diagnostics))
	}
	return h, nil
}

// run serves HTTP and reloads on every signal from hup until ctx ends.
func run(ctx context.Context, s *server.Server, h *Handler, hup <-chan os.Signal) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Start(gctx)
	})

	g.Go(func() error {
		h.watchReload(gctx, hup)
		return nil
	})

	notify(daemon.SdNotifyReady)
	err := g.Wait()
	notify(daemon.SdNotifyStopping)
	return err
}

// watchReload reloads the catalog for each value received on hup.
func (h *Handler) watchReload(ctx context.Context, hup <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-hup:
			if !ok {
				return
			}
			notify(daemon.SdNotifyReloading)
			report := h.Reload(ctx)
			slog.Info("recipe catalog reloaded",
				"source", report.Source,
				"recipes", report.Recipes,
				"rejected", report.Rejected)
			notify(daemon.SdNotifyReady)
		}
	}
}

// notify sends state to systemd. Outside systemd it does nothing.
func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Debug("sd_notify failed", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("sd_notify sent", "state", state)
	}
}
