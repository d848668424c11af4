// Package main is the entry point for the QuickStor server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickstor/internal/ai"
	"quickstor/internal/cache"
	"quickstor/internal/config"
	"quickstor/internal/database"
	"quickstor/internal/document"
	"quickstor/internal/handlers"
	"quickstor/internal/live"
	"quickstor/internal/publish"
	"quickstor/internal/render"
	"quickstor/internal/router"
	"quickstor/internal/session"
	"quickstor/internal/sitestore"
	"quickstor/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"site_env", cfg.SiteEnv,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	sessionStore := session.NewStore(valkeyClient)

	// One renderer serves both surfaces. Pages carry the reload snippet so
	// open browsers re-render when the document behind them changes.
	renderer, err := render.New(true)
	if err != nil {
		slog.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	docStore := document.NewPostgresStore(db, valkeyClient)

	// Publisher: working draft → draft cache + staging → live.
	draftCache := cache.NewDraftCache(valkeyClient)
	publisher := publish.New(docStore, draftCache, cfg.SiteEnv)

	// Rebuild the working draft: cached fields first, then the one-time
	// staging read merges in whatever collaborators saved last.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	site := publisher.LoadDraft(startCtx)
	site, err = publisher.LoadStaged(startCtx, site)
	if err != nil {
		slog.Warn("staging load failed, starting from cached draft", "error", err)
	}
	cancelStart()
	siteStore := sitestore.New(site)

	// First boot: stage and publish the default site so the public site
	// renders before anyone opens the editor.
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if raw, err := docStore.Get(bootCtx, document.SitesCollection, publisher.LiveID()); err == nil && raw == nil {
		if err := publisher.Save(bootCtx, siteStore.Snapshot()); err != nil {
			slog.Warn("initial save failed", "error", err)
		} else if err := publisher.Publish(bootCtx); err != nil {
			slog.Warn("initial publish failed", "error", err)
		} else {
			slog.Info("seeded default site to staging and live")
		}
	}
	cancelBoot()

	// Page cache + live-reload hub.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	hub := live.NewHub()

	// When the live document changes (publish from this or another
	// replica), drop cached pages and tell open browsers to refresh.
	unsubscribe, err := docStore.Subscribe(context.Background(), document.SitesCollection, publisher.LiveID(), func(_ json.RawMessage) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pageCache.InvalidateAll(ctx)
		hub.Reload()
	})
	if err != nil {
		slog.Error("failed to subscribe to live document", "error", err)
		os.Exit(1)
	}
	defer unsubscribe()

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"gemini": {APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
		"openai": {APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
	})
	generator := ai.NewSectionGenerator(aiRegistry)

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(siteStore, publisher, docStore, pageCache, hub, renderer)
	adminAIHandlers := handlers.NewAdminAI(aiRegistry, generator)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(docStore, renderer, pageCache, publisher.LiveID())

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, adminAIHandlers, authHandlers, publicHandlers, hub)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate AI endpoints that wait on LLM responses
	// (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
