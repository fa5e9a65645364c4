// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package main is the entry point for the Quotient server.
//
// Quotient serves quotes over a JSON REST API, records likes and views as
// activity events, ranks quotes by popularity and trend, and recommends
// quotes per user. Live updates are pushed over a WebSocket endpoint.
//
// # Startup Order
//
//  1. Configuration (Koanf v2: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Store (BadgerDB or memory) and the event broker (Watermill gochannel)
//  4. Ranking, similarity, upstream fetcher and the recommendation engine
//  5. Quote service and optional seeding of the built-in quotes
//  6. Supervisor tree with data, messaging and API layers
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the
// HTTP server first, then the messaging and data layers, and reports any
// service that failed to stop within the shutdown timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/quotient/internal/activity"
	"github.com/tomtom215/quotient/internal/api"
	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/fetcher"
	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/quote"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/similarity"
	"github.com/tomtom215/quotient/internal/store"
	"github.com/tomtom215/quotient/internal/supervisor"
	"github.com/tomtom215/quotient/internal/supervisor/services"
	ws "github.com/tomtom215/quotient/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("version", version).Msg("Starting Quotient with supervisor tree")

	watchConfig()

	st, err := store.New(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Str("backend", cfg.Store.Backend).Msg("Store opened")

	broker := activity.NewBroker(cfg.Events.BufferSize)
	defer func() {
		if err := broker.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event broker")
		}
	}()
	eventLog := activity.NewLog(broker)

	rank := ranking.NewEngine(st, eventLog)
	scorer := similarity.NewScorer(cfg.Quotes.SimilarityCacheSize)

	deps := quote.Deps{
		Store:     st,
		Log:       eventLog,
		Ranking:   rank,
		Scorer:    scorer,
		Publisher: broker,
	}

	if cfg.Fetcher.Enabled {
		f, err := fetcher.NewFromConfig(&cfg.Fetcher)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create upstream fetcher")
		}
		deps.Fetcher = f
		logging.Info().Strs("sources", f.Sources()).Msg("Upstream fetcher enabled")
	} else {
		logging.Info().Msg("Upstream fetcher disabled, serving stored quotes only")
	}

	engine, err := initRecommend(cfg, rank, scorer, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	deps.Recommender = engine

	svc, err := quote.NewService(deps, quote.Options{
		FreshFetchProbability: cfg.Quotes.FreshFetchProbability,
		PrioritizeProbability: cfg.Quotes.PrioritizeProbability,
		TopCount:              cfg.Quotes.TopCount,
		ShareBaseURL:          cfg.Quotes.ShareBaseURL,
		Version:               version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create quote service")
	}
	engine.SetDataProvider(svc.RecommendData())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Quotes.SeedDefaults {
		added, err := svc.Seed(ctx, quote.DefaultQuotes())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed default quotes")
		}
		logging.Info().Int("added", added).Msg("Default quotes seeded")
	}

	// sutureslog takes a *slog.Logger; the adapter routes it to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === DATA LAYER ===

	if cfg.Events.TrendingInterval > 0 {
		tree.AddDataService(services.NewPeriodicService("trending-publisher",
			svc.PublishTrendingSnapshot,
			services.PeriodicConfig{Interval: cfg.Events.TrendingInterval},
			logging.WithComponent("trending")))
		logging.Info().Dur("interval", cfg.Events.TrendingInterval).Msg("Trending publisher service added")
	}

	if gc, ok := st.(store.GarbageCollector); ok && cfg.Store.GCInterval > 0 {
		gcLogger := logging.WithComponent("store-gc")
		tree.AddDataService(services.NewPeriodicService("store-gc",
			func(ctx context.Context) error {
				n, err := gc.CollectGarbage(ctx)
				if n > 0 {
					gcLogger.Debug().Int("files", n).Msg("value log rewritten")
				}
				return err
			},
			services.PeriodicConfig{Interval: cfg.Store.GCInterval},
			gcLogger))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store GC service added")
	}

	// === MESSAGING LAYER ===

	var hub *ws.Hub
	if cfg.WebSocket.Enabled {
		hub = ws.NewHub(cfg.WebSocket.BroadcastQueue)
		tree.AddMessagingService(services.NewWebSocketHubService(hub))
		tree.AddMessagingService(ws.NewBridge(broker, hub, svc))
		logging.Info().Msg("WebSocket hub and event bridge added")
	} else {
		logging.Info().Msg("WebSocket disabled")
	}

	// === API LAYER ===

	handler := api.NewHandler(svc, hub, cfg)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, s := range unstopped {
			logging.Warn().Str("service", s.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// watchConfig reloads the log level when the config file changes. Other
// settings need a restart.
func watchConfig() {
	path := config.FindConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		next, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(next.Logging.Level)
		logging.Info().Str("level", next.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
	}
}
