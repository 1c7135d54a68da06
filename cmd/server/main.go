// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package main is the entry point for the Livetrack server.
//
// Livetrack ingests live feeds of location tracks, messages and
// athlete profiles, keeps them as consistent, time-ordered in-memory
// state, and pushes incremental updates to map and timeline view
// clients over websockets.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (env > file > defaults)
//  2. Logging: global zerolog logger
//  3. Sync core: message/track/entity stores wired to input streams
//  4. Event bus: Watermill Go-channel pub/sub of "new data" events
//  5. WebSocket hub: real-time delivery to connected view clients
//  6. HTTP server: ingest and read API, /ws, /metrics, health
//  7. Supervision: suture tree running hub, bus subscriber, optional
//     dummy feed and the HTTP server
//
// # Configuration
//
// Common environment variables (see internal/config):
//
//	HTTP_HOST, HTTP_PORT  listen address (default 0.0.0.0:8172)
//	LOG_LEVEL, LOG_FORMAT logging (default info, json)
//	DUMMY_FEED=true       enable the synthetic development feed
//	CORS_ORIGINS          comma-separated allowed view origins
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server
// drains in-flight requests, the hub closes its clients, and the
// event bus is closed last.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livetrack-io/livetrack/internal/api"
	"github.com/livetrack-io/livetrack/internal/config"
	"github.com/livetrack-io/livetrack/internal/eventbus"
	"github.com/livetrack-io/livetrack/internal/feed"
	"github.com/livetrack-io/livetrack/internal/logging"
	"github.com/livetrack-io/livetrack/internal/store"
	"github.com/livetrack-io/livetrack/internal/supervisor"
	"github.com/livetrack-io/livetrack/internal/supervisor/services"
	ws "github.com/livetrack-io/livetrack/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("starting livetrack")

	// The sync core and everything that observes it. All wiring is
	// explicit: stores and streams are constructed here and handed
	// to collaborators by reference, no package-level singletons.
	core := store.NewCore()

	bus := eventbus.New(eventbus.NewLoggerAdapter())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Err(err).Msg("closing event bus")
		}
	}()

	bridge := eventbus.NewBridge(core, bus)
	bridge.Start()
	defer bridge.Stop()

	hub := ws.NewHub()

	handler := api.NewHandler(core, hub, cfg)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewHubService(hub))
	tree.AddMessagingService(ws.NewBusSubscriber(bus, hub))
	if cfg.Feed.Enabled {
		tree.AddMessagingService(feed.NewGenerator(core, cfg.Feed))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	logging.Info().Msg("livetrack stopped")
	return nil
}
