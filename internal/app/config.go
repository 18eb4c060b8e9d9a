package app

import (
	"os"
	"strconv"
	"time"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	// StorageDriverMemory хранит данные в памяти процесса.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres хранит данные в PostgreSQL.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool

	KafkaBrokers string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int
}

// DefaultConfig возвращает настройки по умолчанию: in-memory хранилище,
// API на :8080 и метрики на :9090.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:                    ":8080",
		MetricsAddr:                 ":9090",
		StorageDriver:               StorageDriverMemory,
		PostgresAutoMigrate:         true,
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            100 * time.Millisecond,
		IdempotencyCleanupInterval:  time.Minute,
		IdempotencyCleanupBatchSize: 500,
	}
}

// ConfigFromEnv строит конфигурацию из переменных окружения поверх значений
// по умолчанию. Непустой DINEPOS_POSTGRES_DSN переключает хранилище на
// PostgreSQL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DINEPOS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DINEPOS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("DINEPOS_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
		cfg.StorageDriver = StorageDriverPostgres
	}
	if v := os.Getenv("DINEPOS_POSTGRES_AUTO_MIGRATE"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := envDuration("DINEPOS_OUTBOX_POLL_INTERVAL"); v > 0 {
		cfg.OutboxPollInterval = v
	}
	if v := envInt("DINEPOS_OUTBOX_BATCH_SIZE"); v > 0 {
		cfg.OutboxBatchSize = v
	}
	if v := envInt("DINEPOS_OUTBOX_MAX_ATTEMPTS"); v > 0 {
		cfg.OutboxMaxAttempts = v
	}
	if v := envDuration("DINEPOS_OUTBOX_RETRY_DELAY"); v > 0 {
		cfg.OutboxRetryDelay = v
	}
	if v := envDuration("DINEPOS_IDEMPOTENCY_CLEANUP_INTERVAL"); v > 0 {
		cfg.IdempotencyCleanupInterval = v
	}
	if v := envInt("DINEPOS_IDEMPOTENCY_CLEANUP_BATCH_SIZE"); v > 0 {
		cfg.IdempotencyCleanupBatchSize = v
	}

	return cfg
}

func envDuration(name string) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func envInt(name string) int {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
