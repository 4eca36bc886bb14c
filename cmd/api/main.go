package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/reseller-console/internal/api"
	"github.com/example/reseller-console/internal/auth"
	"github.com/example/reseller-console/internal/config"
	"github.com/example/reseller-console/internal/domain/fulfillment"
	"github.com/example/reseller-console/internal/domain/stockcheck"
	"github.com/example/reseller-console/internal/infrastructure/kafka"
	"github.com/example/reseller-console/internal/infrastructure/store"
	"github.com/example/reseller-console/internal/mailbox"
	"github.com/example/reseller-console/internal/metrics"
	"github.com/example/reseller-console/internal/telegram"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Reseller Operator Console")
	log.Println("[API] ========================================")
	log.Printf("[API] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[API] Topic: %s", cfg.KafkaTopic)
	log.Printf("[API] Listen: %s", cfg.ListenAddr)

	// Initialize Kafka producer
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Initialize PostgreSQL connection
	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("[API] Connected to PostgreSQL")

	// Initialize stores
	stockStore := store.NewPostgresStockStore(db)
	orderStore := store.NewPostgresOrderStore(db)
	operatorStore := store.NewPostgresOperatorStore(db)

	// Initialize delivery channel and mailbox adapters
	sender := telegram.NewClient(cfg.TelegramBotToken, "", nil)
	adapters := map[stockcheck.Source]mailbox.Adapter{
		stockcheck.SourceTempMail: mailbox.NewTempMailAdapter(cfg.Mailbox.TempMailBaseURL, nil),
		stockcheck.SourceTinyhost: mailbox.NewTinyhostAdapter(cfg.Mailbox.TinyhostURL, nil),
		stockcheck.SourceGraph:    mailbox.NewGraphAdapter(cfg.Mailbox.GraphProxyURL, cfg.Mailbox.GraphClientID, nil),
	}

	// Initialize engines
	fulfillments := fulfillment.NewService(orderStore, stockStore, stockStore, sender, producer, cfg.Fulfillment)
	checks := stockcheck.NewService(stockStore, adapters, producer, cfg.Check)

	// Initialize JWT service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Initialize API
	handlers := api.NewHandlers(fulfillments, checks, stockStore, producer)
	authHandlers := api.NewAuthHandlers(operatorStore, tokens)
	router := api.NewRouter(handlers, authHandlers, tokens, cfg.CronSecret, metricsHandler)

	// Start HTTP server
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}
