package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/publora/blog-search-engine/api"
	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/analytics"
	"github.com/publora/blog-search-engine/internal/engine"
	"github.com/publora/blog-search-engine/internal/logger"
	"github.com/publora/blog-search-engine/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file (defaults apply when empty)")
		port       = flag.Int("port", 0, "Override HTTP port from config")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *port > 0 {
		cfg.HTTP.Port = *port
	}

	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	postStore, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open post store", zap.Error(err))
	}

	searchEngine := engine.New(cfg, postStore, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The engine serves an empty corpus until the first successful refresh.
	if _, err := searchEngine.Refresh(ctx); err != nil {
		log.Warn("initial snapshot refresh failed, serving empty corpus", zap.Error(err))
	}
	searchEngine.StartPeriodicRefresh(ctx, time.Duration(cfg.Search.RefreshIntervalSec)*time.Second)

	if cfg.Logging.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, api.NewAPI(searchEngine, analytics.NewService(), &cfg, log))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("starting server", zap.Int("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
