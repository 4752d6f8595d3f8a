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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/NVIDIA/craftgrid/pkg/logging"
	"golang.org/x/time/rate"
)

// Server is an HTTP server with the standard middleware chain and probes.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the server configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithName sets the server name reported on the root route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported on the root route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithRateLimit sets the admitted request rate and burst. Non-positive
// values keep the current setting.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.config.RateLimit = rate.Limit(limit)
		}
		if burst > 0 {
			s.config.RateLimitBurst = burst
		}
	}
}

// WithHandler adds handlers keyed by route pattern.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// New creates a server from defaults and the given options.
// A root route listing is added unless a "/" handler is supplied.
func New(opts ...Option) *Server {
	s := &Server{
		config: NewConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}
	if _, exists := s.config.Handlers[pathRoot]; !exists {
		s.config.Handlers[pathRoot] = s.handleDefault
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              s.config.addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelError),
	}

	return s
}

// Handler returns the routed handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady sets the readiness reported by /ready.
func (s *Server) SetReady(ready bool) {
	s.setReady(ready)
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", lis.Addr().String(),
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
	)

	s.SetReady(true)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.SetReady(false)
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Shutdown marks the server not ready and drains connections within
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "name", s.config.Name)
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
