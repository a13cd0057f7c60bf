package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/api/handlers"
	"github.com/stitts-dev/tennis-sim/internal/cache"
	"github.com/stitts-dev/tennis-sim/internal/config"
	"github.com/stitts-dev/tennis-sim/internal/database"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/websocket"
	"github.com/stitts-dev/tennis-sim/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logger with service context
	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("tennis-sim").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting tennis simulation service")

	// Setup Gin mode
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Player stats come from the database when one is configured,
	// otherwise from the CSV file alone. With a database configured the
	// CSV, if present, seeds it on startup.
	var source stats.Source
	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			logger.WithService("tennis-sim").Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		store, err := stats.NewStore(db.DB)
		if err != nil {
			logger.WithService("tennis-sim").Fatalf("Failed to initialize stats store: %v", err)
		}
		source = store

		if cfg.PlayerStatsPath != "" {
			if table, err := stats.LoadCSV(cfg.PlayerStatsPath); err != nil {
				logger.WithService("tennis-sim").WithError(err).Warn("Skipping stats import, CSV not loadable")
			} else if err := store.Import(table.Rows()); err != nil {
				logger.WithService("tennis-sim").Fatalf("Failed to import player stats: %v", err)
			} else {
				logger.WithService("tennis-sim").WithField("players", table.Len()).Info("Imported player stats into database")
			}
		}
	} else {
		table, err := stats.LoadCSV(cfg.PlayerStatsPath)
		if err != nil {
			logger.WithService("tennis-sim").Fatalf("Failed to load player stats: %v", err)
		}
		logger.WithService("tennis-sim").WithField("players", table.Len()).Info("Loaded player stats from CSV")
		source = table
	}

	// Redis is optional; without it results are simply not cached.
	var redisClient *redis.Client
	var cacheService *cache.SimulationCacheService
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("tennis-sim").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("tennis-sim").Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheService = cache.NewSimulationCacheService(redisClient, structuredLogger)
	}

	// Initialize WebSocket hub for progress updates
	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	runner := simulator.NewRunner(source, cfg.SimulationWorkers, structuredLogger)

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	simulationHandler := handlers.NewSimulationHandler(source, runner, cacheService, wsHub, cfg, structuredLogger)
	optimizationHandler := handlers.NewOptimizationHandler(cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, source, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/simulate", simulationHandler.RunBatchSimulation)
		apiV1.POST("/simulate/match", simulationHandler.RunSingleMatch)
		apiV1.GET("/simulate/:id/results", simulationHandler.GetSimulationResults)

		apiV1.POST("/optimize", optimizationHandler.OptimizeLineup)
	}

	// WebSocket endpoint for progress updates
	router.GET("/ws/simulation-progress/:batch_id", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("tennis-sim").WithField("port", cfg.Port).Info("Tennis simulation service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("tennis-sim").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("tennis-sim").Info("Shutting down tennis simulation service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("tennis-sim").Fatalf("Server forced to shutdown: %v", err)
	}

	logger.WithService("tennis-sim").Info("Tennis simulation service exited")
}
