// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/config"
	"github.com/veselosky/commoncontent/internal/handler"
	"github.com/veselosky/commoncontent/internal/logging"
	"github.com/veselosky/commoncontent/internal/middleware"
	"github.com/veselosky/commoncontent/internal/render"
	"github.com/veselosky/commoncontent/internal/scheduler"
	"github.com/veselosky/commoncontent/internal/service"
	"github.com/veselosky/commoncontent/internal/store"
	"github.com/veselosky/commoncontent/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the content server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Mirror WARN and ERROR records into the event table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, cfg.SiteDomain, cfg.SiteName, cfg.LangCode); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	cacheConfig := cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
	appCache, err := cache.New(cacheConfig)
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer appCache.Close()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	queries := store.New(db)
	content := service.NewContentService(queries)
	vars := service.NewVarsService(queries, appCache)
	menus := service.NewMenuService(queries, content, appCache)

	renderConfig := render.Config{TemplatesFS: web.Templates, IsDev: cfg.IsDevelopment()}
	if cfg.TemplateDir != "" {
		renderConfig.TemplatesFS = os.DirFS(cfg.TemplateDir)
		renderConfig.Root = "."
	}
	renderer, err := render.New(renderConfig)
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	sched := scheduler.New(queries, appCache, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	front := handler.NewFrontendHandler(content, vars, menus, renderer, appCache, logger,
		handler.FrontendConfig{
			DefaultDomain: cfg.SiteDomain,
			Staging:       cfg.Env == "staging",
		})
	health := handler.NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	if cfg.RateLimitEnabled() {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
		slog.Info("rate limiting enabled", "rate", cfg.RateLimit, "burst", cfg.RateBurst)
	}
	handler.RegisterRoutes(r, front, health, web.Static, cfg.MediaDir)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
