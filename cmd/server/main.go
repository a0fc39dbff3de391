package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"medassist/internal/app"
	"medassist/internal/config"
	"medassist/internal/server"
	"medassist/internal/util"
	"medassist/pkg/ai"
	"medassist/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	util.InitLogger(cfg.LogLevel)

	var dataStore store.Store
	if cfg.DatabaseURL != "" {
		gormStore, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to init postgres store", "err", err)
			os.Exit(1)
		}
		dataStore = gormStore
		slog.Info("using postgres store")
	} else {
		dataStore = store.NewMemoryStore()
		slog.Info("using in-memory store; data is lost on restart")
	}

	var generator ai.ChatGenerator
	if cfg.OpenRouterAPIKey != "" {
		client, err := ai.NewOpenRouterClient(ai.OpenRouterConfig{
			BaseURL: cfg.OpenRouterBaseURL,
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.GenerationModel,
			Referer: cfg.SiteURL,
			Title:   cfg.AppTitle,
			Timeout: time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
		})
		if err != nil {
			slog.Error("failed to init openrouter client", "err", err)
			os.Exit(1)
		}
		generator = client
	} else {
		slog.Warn("OPENROUTER_API_KEY not set; diagnosis and chat requests will fail")
	}

	appCore, err := app.New(app.Config{
		Store:     dataStore,
		Generator: generator,
	})
	if err != nil {
		slog.Error("failed to init app", "err", err)
		os.Exit(1)
	}

	httpServer := server.New(server.Config{App: appCore})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
