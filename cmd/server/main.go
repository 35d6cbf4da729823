// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

// Package main is the entry point for the Conventus server.
//
// Conventus is a self-hosted event discovery and engagement engine. It
// stores community events, tracks favorites and RSVPs per user, pushes
// live event snapshots to watchers over WebSocket, and serves
// personalized event recommendations.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables layered over an optional
//     YAML file over built-in defaults (Koanf v2)
//  2. Storage: Badger key-value store, wrapped in a circuit breaker
//  3. Engagement ledgers: favorites and RSVPs on top of the store
//  4. Recommendation engine: favorite-boosted popularity scoring
//  5. Watch hub: fan-out of event snapshots to WebSocket clients
//  6. HTTP server: REST API under /api/v1 plus /healthz and /metrics
//
// All long-running parts run under a suture supervisor tree so a crash
// in one layer restarts that layer without taking the process down.
//
// # Configuration
//
// Key environment variables (see internal/config for the full set):
//   - SESSION_SECRET: 32+ character secret for token signing (required)
//   - HTTP_PORT: listen port (default 8094)
//   - STORAGE_PATH: Badger data directory; empty runs in-memory
//   - LOG_LEVEL, LOG_FORMAT: zerolog settings
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the listener
// stops accepting connections, in-flight requests drain within the
// shutdown timeout, watch clients are closed, and the store is closed
// last.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/conventus/internal/api"
	"github.com/tomtom215/conventus/internal/config"
	"github.com/tomtom215/conventus/internal/engage"
	"github.com/tomtom215/conventus/internal/logging"
	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/recommend"
	"github.com/tomtom215/conventus/internal/repository"
	"github.com/tomtom215/conventus/internal/session"
	"github.com/tomtom215/conventus/internal/supervisor"
	"github.com/tomtom215/conventus/internal/supervisor/services"
	ws "github.com/tomtom215/conventus/internal/websocket"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Conventus")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	go func() {
		start := time.Now()
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}()

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("storage_path", cfg.Storage.Path).
		Bool("in_memory", cfg.Storage.Path == "").
		Msg("Configuration loaded")

	// Open the event store. An empty path runs Badger in-memory for
	// ephemeral deployments and local development.
	opts := badger.DefaultOptions(cfg.Storage.Path).WithLogger(nil)
	if cfg.Storage.Path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open event store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event store")
		}
	}()
	logging.Info().Msg("Event store opened")

	logger := logging.Logger()

	// Repository with a circuit breaker in front of the store. The
	// breaker turns a misbehaving store into fast 503s instead of piled
	// up goroutines.
	store := repository.NewBadger(db, logger)
	repo := repository.WithBreaker(store)

	favorites := engage.NewFavoritesLedger(repo, logger)
	rsvps := engage.NewRSVPLedger(repo, logger)

	engineCfg := recommend.DefaultConfig()
	if cfg.Recommend.MaxResults > 0 {
		engineCfg.MaxResults = cfg.Recommend.MaxResults
	}
	if cfg.Recommend.FavoriteBoost >= 0 {
		engineCfg.FavoriteBoost = cfg.Recommend.FavoriteBoost
	}
	engine, err := recommend.NewEngine(recommend.NewRepositoryProvider(repo), engineCfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session manager")
	}

	hub := ws.NewHub(repo)

	handler := api.NewHandler(repo, favorites, rsvps, engine, sessions, hub, version)
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	slogLogger := logging.NewSlogLogger()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewTree(slogLogger, treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Messaging layer: watch hub plus store maintenance. Value log GC
	// only applies to on-disk stores.
	tree.AddMessagingService(services.NewWatchHubService(hub))
	if cfg.Storage.Path != "" {
		tree.AddMessagingService(services.NewStoreGCService(db, cfg.Storage.GCInterval, logger))
	}

	// API layer.
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor finishes.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
