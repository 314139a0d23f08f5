package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"homework-notifier/internal/api"
	"homework-notifier/internal/config"
	"homework-notifier/internal/db"
	"homework-notifier/internal/kafka"
	"homework-notifier/internal/logging"
	"homework-notifier/internal/practicum"
	"homework-notifier/internal/providers"
	"homework-notifier/internal/services"
)

func main() {
	// Load config; missing credentials stop the process here
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional sinks
	var sinks []services.Sink
	var store api.NotificationStore
	if cfg.DB.DSN != "" {
		dbConn, err := db.New(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatalf("Database connection failed: %v", err)
		}
		defer dbConn.Close()
		sinks = append(sinks, dbConn)
		store = dbConn
		logger.Info("Notification journal enabled")
	}
	if cfg.Kafka.Broker != "" {
		producer := kafka.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Errorf("Kafka producer close failed: %v", err)
			}
		}()
		sinks = append(sinks, producer)
		logger.Infof("Publishing notifications to Kafka topic: %s", cfg.Kafka.Topic)
	}

	notifier, err := providers.NewTelegram(cfg.Telegram.Token, cfg.Telegram.RateLimit, logger)
	if err != nil {
		logger.Fatalf("Telegram init failed: %v", err)
	}
	client := practicum.NewClient(cfg.Practicum.Endpoint, cfg.Practicum.Token, cfg.Practicum.Timeout, logger)

	svc := services.New(client, notifier, logger, cfg, sinks...)
	var wg sync.WaitGroup
	svc.Start(ctx, &wg)

	// Start API server
	var server *http.Server
	if cfg.API.Addr != "" {
		handler := api.NewHandler(svc, svc.WebSockets(), store, logger)
		server = &http.Server{
			Addr:              cfg.API.Addr,
			Handler:           api.NewRouter(logger, handler),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Infof("Starting API server on %s", cfg.API.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("API server failed: %v", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down...")
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("API server shutdown failed: %v", err)
		}
		cancel()
	}
	wg.Wait()
	logger.Info("Service stopped")
}
