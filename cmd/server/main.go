package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-website-backend/internal/cache"
	"hospital-website-backend/internal/config"
	"hospital-website-backend/internal/database"
	"hospital-website-backend/internal/logger"
	"hospital-website-backend/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Setup logging
	log := logger.New(cfg)
	log.Info("Configuration loaded successfully")

	// 3. Initialize database connection and schema
	db := database.Connect(cfg, log)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 4. Initialize the counter store (Redis or in-process)
	store := cache.New(cfg.Redis, log)

	// 5. Setup Gin mode and build the application
	gin.SetMode(cfg.Server.GinMode)
	app := server.New(cfg, db, store, log)

	// 6. Start the session cleanup scheduler
	if err := app.Cleanup.Start(cfg.Cleanup.Schedule); err != nil {
		log.Fatalf("Failed to start session cleanup: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7. Setup graceful shutdown
	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Stop background cleanup
	app.Cleanup.Stop()
	log.Info("Server exited")
}
