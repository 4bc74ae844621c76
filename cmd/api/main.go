package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"atelier-boutique/internal/checkout"
	"atelier-boutique/internal/config"
	"atelier-boutique/internal/logger"
	"atelier-boutique/internal/notify"
	"atelier-boutique/internal/server"
	"atelier-boutique/internal/session"

	"go.uber.org/zap"
)

const sessionMaxIdle = 2 * time.Hour

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// evictIdleSessions periodically drops sessions that have gone quiet. All
// state is in memory, so this is the only reclamation the storefront needs.
func evictIdleSessions(ctx context.Context, sessions *session.Manager) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.EvictIdle(sessionMaxIdle)
		}
	}
}

func main() {
	// Load configuration
	cfg, cfgErr := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Warn("Config file ignored, defaults apply", zap.Error(cfgErr))
	}

	log.Info("Starting boutique storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.Int64("shipping_fee", cfg.Store.ShippingFee),
		zap.Duration("payment_delay", cfg.Store.PaymentDelay),
	)

	// Session manager: every browsing session gets its own catalog, cart,
	// address book and checkout flow, seeded from the sample data.
	sessions := session.NewManager(
		session.Config{
			ShippingFee:       cfg.Store.ShippingFee,
			PaymentDelay:      cfg.Store.PaymentDelay,
			LowStockThreshold: cfg.Store.LowStockThreshold,
		},
		checkout.NewTimerScheduler(),
		notify.NewLogNotifier(log),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go evictIdleSessions(ctx, sessions)

	// Create server
	srv := server.NewServer(cfg, log, sessions)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
