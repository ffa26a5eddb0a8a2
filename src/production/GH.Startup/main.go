package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.ApiService/controllers"
	container "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Container"
)

func main() {
	c, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to build container: %v", err))
	}

	cfg := c.GetConfig()
	logger := c.GetLogger()
	logger.Info("Starting greenhouse ingestion service")

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := c.InitializeDatabase(initCtx); err != nil {
		initCancel()
		logger.FatalWithError(err, "Failed to initialize database")
	}
	initCancel()

	db, err := c.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to connect to database")
	}

	deviceRepo, telemetryRepo, statusRepo, _, err := c.GetRepositories()
	if err != nil {
		logger.FatalWithError(err, "Failed to build repositories")
	}

	// Create and start the MQTT ingestor
	ing, err := c.GetIngestor()
	if err != nil {
		logger.FatalWithError(err, "Failed to build MQTT ingestor")
	}
	if err := ing.Start(context.Background()); err != nil {
		logger.FatalWithError(err, "Failed to start MQTT ingestor")
	}

	// Initialize Gin router for the read-only API
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	deviceController := controllers.NewDeviceController(deviceRepo, telemetryRepo, statusRepo, logger)
	healthController := controllers.NewHealthController(db, ing, logger)
	deviceController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting on port " + cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("Ingestion service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "HTTP server forced to shutdown")
	}

	// The container stops the MQTT client before closing the pool
	if err := c.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Error during container shutdown")
	}

	logger.Info("Shutdown complete")
}
