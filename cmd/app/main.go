package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allin1appd-sys/zenchair/internal/config"
	"github.com/allin1appd-sys/zenchair/internal/db"
	"github.com/allin1appd-sys/zenchair/internal/events"
	"github.com/allin1appd-sys/zenchair/internal/logger"
	"github.com/allin1appd-sys/zenchair/internal/server"
)

// @title ZenChair API
// @version 1.0
// @description API for barbershop appointment booking.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting ZenChair application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	emitter := events.NewEmitter(cfg.RedisAddr)
	defer emitter.Close()

	consumer := events.NewConsumer(cfg.RedisAddr, nil)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Start(ctx)

	srv := server.New(database, cfg, emitter)

	go completionSweep(ctx, srv)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// completionSweep periodically flips confirmed bookings whose window
// has fully elapsed to completed.
func completionSweep(ctx context.Context, srv *server.Server) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := srv.Booking.CompleteElapsed(ctx); err != nil {
				logger.Error("Completion sweep failed", "error", err)
			}
		}
	}
}
