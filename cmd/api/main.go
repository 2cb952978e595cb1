package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/logistics-erp-api/internal/api"
	"github.com/joao-fontenele/logistics-erp-api/internal/config"
	"github.com/joao-fontenele/logistics-erp-api/internal/documents"
	"github.com/joao-fontenele/logistics-erp-api/internal/messaging"
	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
	"github.com/joao-fontenele/logistics-erp-api/internal/store/backend"
	"github.com/joao-fontenele/logistics-erp-api/internal/telemetry"
	"github.com/joao-fontenele/logistics-erp-api/internal/validation"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	svc := telemetry.Service{Name: "logistics-api", Version: cfg.ServiceVersion}

	if cfg.OTelEnabled {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, svc, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(ctx) }()
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(svc)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	docStore, closeStore, err := backend.Open(connectCtx, cfg, logger)
	cancelConnect()
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeStore(context.Background()) }()

	var publisher documents.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.DocumentEventsTopic, messaging.WithCompression(kafka.Snappy))
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	registry := schema.NewRegistry()
	creator, err := documents.NewCreator(validation.New(registry), docStore, publisher, logger)
	if err != nil {
		logger.Error("failed to create document creator", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(creator, registry, docStore, api.DatabaseInfo{
		URLSet: cfg.DatabaseURLSet(),
		Name:   cfg.DatabaseName,
	}, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("/", api.NewRouter(handler))

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: otelhttp.NewHandler(mux, svc.Name,
			otelhttp.WithSpanNameFormatter(telemetry.SpanName),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting logistics api", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
