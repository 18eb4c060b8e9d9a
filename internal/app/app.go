package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/api"
	healthcheck "github.com/vladislavdragonenkov/dinepos/internal/health"
	"github.com/vladislavdragonenkov/dinepos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/dinepos/internal/metrics"
	"github.com/vladislavdragonenkov/dinepos/internal/service/catalog"
	idemsvc "github.com/vladislavdragonenkov/dinepos/internal/service/idempotency"
	"github.com/vladislavdragonenkov/dinepos/internal/service/menu"
	"github.com/vladislavdragonenkov/dinepos/internal/service/order"
	outboxsvc "github.com/vladislavdragonenkov/dinepos/internal/service/outbox"
	"github.com/vladislavdragonenkov/dinepos/internal/service/table"
	"github.com/vladislavdragonenkov/dinepos/internal/storage/postgres"
	"github.com/vladislavdragonenkov/dinepos/internal/version"
)

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(version.String())

	var deps *Dependencies
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		deps = NewPostgresDependencies(store, logger)
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
		logger.Info("using postgres storage")
	case StorageDriverMemory, "":
		deps = NewDependencies(logger)
		logger.Info("using in-memory storage")
	default:
		return fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	posMetrics := metrics.NewPosMetrics()

	catalogSvc := catalog.NewService(deps.Products, deps.MenuGroups, logger.WithField("layer", "catalog"))
	menuSvc := menu.NewService(deps.Menus, deps.MenuGroups, deps.Products, posMetrics, logger.WithField("layer", "menu"))
	tableSvc := table.NewService(deps.Tables, deps.Orders, deps.Outbox, posMetrics, logger.WithField("layer", "table"))
	orderSvc := order.NewService(deps.Orders, deps.Menus, deps.Tables, deps.Timeline, deps.Outbox, posMetrics, logger.WithField("layer", "order"))

	// Инициализация Kafka producer (опционально)
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	if kafkaProducer != nil {
		publisher := kafka.NewOutboxPublisher(kafkaProducer)
		dlqPublisher := kafka.NewDLQPublisher(kafkaProducer)
		worker := outboxsvc.NewWorker(deps.Outbox, publisher,
			outboxsvc.WithLogger(logger.WithField("worker", "outbox")),
			outboxsvc.WithDLQPublisher(dlqPublisher),
			outboxsvc.WithPollInterval(cfg.OutboxPollInterval),
			outboxsvc.WithBatchSize(cfg.OutboxBatchSize),
			outboxsvc.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outboxsvc.WithRetryBaseDelay(cfg.OutboxRetryDelay),
		)
		go worker.Run(ctx)
	} else {
		logger.Info("kafka is not configured, outbox worker disabled")
	}

	cleanup := idemsvc.NewCleanupWorker(deps.Idempotency,
		idemsvc.WithLogger(logger.WithField("worker", "idempotency-cleanup")),
		idemsvc.WithInterval(cfg.IdempotencyCleanupInterval),
		idemsvc.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
	)
	go cleanup.Run(ctx)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiServer := api.NewServer(catalogSvc, menuSvc, tableSvc, orderSvc, deps.Idempotency, logger.WithField("layer", "api"))
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: apiServer.Routes()}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
