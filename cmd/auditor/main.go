package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joao-fontenele/logistics-erp-api/internal/audit"
	"github.com/joao-fontenele/logistics-erp-api/internal/config"
	"github.com/joao-fontenele/logistics-erp-api/internal/documents"
	"github.com/joao-fontenele/logistics-erp-api/internal/messaging"
	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
	"github.com/joao-fontenele/logistics-erp-api/internal/store/backend"
	"github.com/joao-fontenele/logistics-erp-api/internal/telemetry"
	"github.com/joao-fontenele/logistics-erp-api/internal/validation"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if len(cfg.KafkaBrokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTelEnabled {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, telemetry.Service{Name: "audit-worker", Version: cfg.ServiceVersion}, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	docStore, closeStore, err := backend.Open(connectCtx, cfg, logger)
	cancelConnect()
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	if docStore == nil {
		logger.Error("document store is required")
		os.Exit(1)
	}
	defer func() { _ = closeStore(context.Background()) }()

	creator, err := documents.NewCreator(validation.New(schema.NewRegistry()), docStore, nil, logger)
	if err != nil {
		logger.Error("failed to create document creator", "error", err)
		os.Exit(1)
	}

	consumer := messaging.NewConsumer(cfg.KafkaBrokers, cfg.DocumentEventsTopic, cfg.AuditConsumerGroup,
		messaging.WithStartOffset(kafka.FirstOffset),
		messaging.WithRetry(cfg.AuditMaxAttempts, cfg.AuditRetryDelay),
		messaging.WithLogger(logger),
	)
	defer func() { _ = consumer.Close() }()

	handler := audit.NewHandler(creator, logger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting audit worker", "brokers", cfg.KafkaBrokers, "topic", cfg.DocumentEventsTopic)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
