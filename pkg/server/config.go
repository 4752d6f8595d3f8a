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

package server

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
)

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Config holds server configuration.
type Config struct {
	Name    string
	Version string

	// Handlers are mounted behind the middleware chain, keyed by path.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// RateLimit is requests per second shared by every client; RateLimitBurst
	// is how far a burst may exceed it.
	RateLimit      rate.Limit
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the defaults with PORT and SHUTDOWN_TIMEOUT_SECONDS
// applied.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              defaults.ServerPort,
		RateLimit:         defaults.ServerRateLimit,
		RateLimitBurst:    defaults.ServerRateLimitBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := positiveEnv(EnvPort); ok && port <= 65535 {
		cfg.Port = port
	}
	// The grace period should not outlast the pod's termination grace.
	if seconds, ok := positiveEnv(EnvShutdownTimeout); ok {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	return cfg
}

// addr is the listen address in host:port form.
func (c *Config) addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// positiveEnv reads a positive integer from the environment. Unset, malformed
// and non-positive values report false.
func positiveEnv(key string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
