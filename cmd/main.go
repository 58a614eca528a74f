package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-order-system/internal/config"
	"pizza-order-system/internal/database"
	"pizza-order-system/internal/logger"
	"pizza-order-system/internal/messaging"
	"pizza-order-system/internal/metrics"
	"pizza-order-system/internal/services/order"
)

func main() {
	var (
		configPath     = flag.String("config", "config.yaml", "Path to configuration file")
		port           = flag.Int("port", 0, "HTTP port (overrides config)")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations directory")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("order-service")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting order service", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *migrationsPath); err != nil {
		log.Error("service_failed", "Order service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// run wires the dependencies and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The confirmation publisher is optional; without RabbitMQ the service
	// still places orders.
	var publisher order.ConfirmationPublisher
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	m := metrics.New("order_service")
	store := order.NewPostgresStore(db)
	service := order.NewService(store, publisher, log)
	handler := order.NewHandler(service, log, m)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Order service listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
