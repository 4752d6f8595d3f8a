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
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvRecipes names the recipe definition source.
	EnvRecipes = "CRAFT_RECIPES"
	// EnvItems names an item catalog file replacing the embedded one.
	EnvItems = "CRAFT_ITEMS"
	// EnvKubeconfig is the kubeconfig used for cm:// sources.
	EnvKubeconfig = "KUBECONFIG"
	// EnvRateLimit caps grid requests per second across all clients.
	EnvRateLimit = "CRAFT_RATE_LIMIT"
	// EnvRateLimitBurst is the burst admitted above CRAFT_RATE_LIMIT.
	EnvRateLimitBurst = "CRAFT_RATE_LIMIT_BURST"

	// DefaultRecipes is the source used when CRAFT_RECIPES is unset.
	DefaultRecipes = "crafting.txt"
)

// Config holds craftd settings not owned by pkg/server.
type Config struct {
	Recipes    string
	Items      string
	Kubeconfig string

	// RateLimit and RateLimitBurst override the server admission limits
	// when positive.
	RateLimit      float64
	RateLimitBurst int
}

// configFromEnv reads Config from the environment.
func configFromEnv() Config {
	cfg := Config{
		Recipes:    strings.TrimSpace(os.Getenv(EnvRecipes)),
		Items:      strings.TrimSpace(os.Getenv(EnvItems)),
		Kubeconfig: strings.TrimSpace(os.Getenv(EnvKubeconfig)),
	}
	if cfg.Recipes == "" {
		cfg.Recipes = DefaultRecipes
	}

	if v := strings.TrimSpace(os.Getenv(EnvRateLimit)); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			slog.Warn("ignoring invalid rate limit", "env", EnvRateLimit, "value", v)
		} else {
			cfg.RateLimit = limit
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRateLimitBurst)); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			slog.Warn("ignoring invalid rate limit burst", "env", EnvRateLimitBurst, "value", v)
		} else {
			cfg.RateLimitBurst = burst
		}
	}
	return cfg
}
