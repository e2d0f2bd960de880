package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"campus-nav-server/config"
	"campus-nav-server/handlers"
	"campus-nav-server/observability"
	"campus-nav-server/routing"
	"campus-nav-server/services"
)

func loadGraph(cfg *config.Config, logger *zap.Logger) (*routing.Graph, error) {
	if cfg.GraphFile == "" {
		g := routing.Campus()
		logger.Info("using compiled-in campus graph", zap.String("name", g.Name()), zap.Int("nodes", g.Len()))
		return g, nil
	}

	g, err := routing.LoadGraph(cfg.GraphFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded graph file",
		zap.String("path", cfg.GraphFile),
		zap.String("name", g.Name()),
		zap.Int("nodes", g.Len()),
		zap.Int("links", len(g.Links())))
	return g, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	graph, err := loadGraph(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load routing graph", zap.Error(err))
	}

	var metrics *observability.Collector
	if cfg.EnableMetrics {
		metrics = observability.NewCollector(cfg.MetricsNamespace)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	service := services.NewNavigationService(graph, logger, metrics, cfg.WalkSpeedMS)
	router := handlers.NewRouter(service, handlers.RouterOptions{
		Logger:         logger,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("campus navigation server starting", zap.String("address", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
