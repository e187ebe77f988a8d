package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/infrastructure/config"
	"github.com/bibbank/credit-schedule-service/internal/infrastructure/kafka"
	pgRepo "github.com/bibbank/credit-schedule-service/internal/infrastructure/postgres"
	"github.com/bibbank/credit-schedule-service/internal/infrastructure/telemetry"
	grpcPresentation "github.com/bibbank/credit-schedule-service/internal/presentation/grpc"
	"github.com/bibbank/credit-schedule-service/internal/presentation/rest"
	pkgkafka "github.com/bibbank/credit-schedule-service/pkg/kafka"
	"github.com/bibbank/credit-schedule-service/pkg/observability"
	pkgpostgres "github.com/bibbank/credit-schedule-service/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("credit-schedule-service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("starting credit-schedule-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"business_timezone", location.String(),
	)

	// Initialize tracing.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	scheduleMetrics, err := telemetry.NewScheduleMetrics(otel.Meter("credit-schedule"))
	if err != nil {
		return fmt.Errorf("init schedule metrics: %w", err)
	}

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: cfg.ServiceName,
		MaxConns:        int32(cfg.DB.MaxConns),
		MinConns:        int32(cfg.DB.MinConns),
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://"+cfg.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Wire infrastructure adapters.
	creditRepo := pgRepo.NewCreditRepo(pool)
	rateRepo := pgRepo.NewRateRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	loader := pgRepo.NewSnapshotLoader(pool)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer producer.Close()
	publisher := kafka.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	engine := service.NewScheduleEngine()
	reconciler := service.NewPeriodReconciler()
	clock := usecase.Clock(usecase.SystemClock)

	// Wire use cases.
	api := &usecase.ScheduleService{
		Preview:     usecase.NewPreviewScheduleUseCase(engine, scheduleMetrics),
		Create:      usecase.NewCreateCreditUseCase(creditRepo, publisher, engine, scheduleMetrics, clock, logger),
		Get:         usecase.NewGetScheduleUseCase(loader, engine, scheduleMetrics),
		Recompute:   usecase.NewRecomputeScheduleUseCase(loader, creditRepo, publisher, engine, scheduleMetrics, clock, logger),
		AddRate:     usecase.NewAddRateEntryUseCase(loader, rateRepo, publisher, engine, scheduleMetrics, logger),
		Unprocessed: usecase.NewListUnprocessedPeriodsUseCase(loader, engine, reconciler, clock, location),
		BulkCreate:  usecase.NewCreatePaymentsBulkUseCase(loader, paymentRepo, publisher, engine, reconciler, scheduleMetrics, clock, logger),
	}

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(grpcPresentation.NewScheduleHandler(api, logger), logger, grpcPresentation.ServerOptions{
		TLSCertFile: cfg.GRPC.TLSCertFile,
		TLSKeyFile:  cfg.GRPC.TLSKeyFile,
		Reflection:  cfg.GRPC.Reflection,
	})
	if err != nil {
		return err
	}

	// HTTP server: JSON API, health checks and metrics.
	mux := http.NewServeMux()
	rest.NewHealthHandler(rest.PingFunc(func(ctx context.Context) error {
		return pkgpostgres.HealthCheck(ctx, pool)
	}), logger).RegisterRoutes(mux)
	rest.NewScheduleHandler(api, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-schedule-service stopped")
	return serveErr
}
