package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
)

const (
	envHTTPAddr            = "STORE_HTTP_ADDR"
	envMetricsAddr         = "STORE_METRICS_ADDR"
	envGinMode             = "GIN_MODE"
	envStorageDriver       = "STORE_STORAGE_DRIVER"
	envMongoURI            = "STORE_MONGO_URI"
	envMongoDatabase       = "STORE_MONGO_DATABASE"
	envPostgresDSN         = "STORE_POSTGRES_DSN"
	envPostgresAutoMigrate = "STORE_POSTGRES_AUTO_MIGRATE"
	envSeedFile            = "STORE_SEED_FILE"
	envTemplatesDir        = "STORE_TEMPLATES_DIR"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envOutboxPollInterval  = "STORE_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize     = "STORE_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts   = "STORE_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay    = "STORE_OUTBOX_RETRY_DELAY"
	envOutboxMaxPendingAge = "STORE_OUTBOX_MAX_PENDING_AGE"
)

type envLookup func(string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv накладывает переменные окружения на конфигурацию по умолчанию.
// Некорректные значения не валят запуск: остаётся значение по умолчанию, а в ответ
// добавляется предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	warn := func(key, raw string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s=%q ignored: %v", key, raw, err))
	}
	positiveInt := func(key string, dst *int) {
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return
		}
		v, err := parseInt(raw, func(v int) bool { return v > 0 }, "must be > 0")
		if err != nil {
			warn(key, raw, err)
			return
		}
		*dst = v
	}
	duration := func(key string, dst *time.Duration, valid func(time.Duration) bool, rule string) {
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return
		}
		v, err := parseDuration(raw, valid, rule)
		if err != nil {
			warn(key, raw, err)
			return
		}
		*dst = v
	}

	str(envHTTPAddr, &cfg.HTTPAddr)
	str(envMetricsAddr, &cfg.MetricsAddr)
	str(envGinMode, &cfg.GinMode)
	str(envMongoURI, &cfg.MongoURI)
	str(envMongoDatabase, &cfg.MongoDatabase)
	str(envPostgresDSN, &cfg.PostgresDSN)
	str(envSeedFile, &cfg.SeedFile)
	str(envTemplatesDir, &cfg.TemplatesDir)

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}

	if raw, ok := lookup(envPostgresAutoMigrate); ok && strings.TrimSpace(raw) != "" {
		if v, err := parseBool(raw); err != nil {
			warn(envPostgresAutoMigrate, raw, err)
		} else {
			cfg.PostgresAutoMigrate = v
		}
	}

	if raw, ok := lookup(envKafkaBrokers); ok {
		cfg.KafkaBrokers = app.ParseBrokers(raw)
	}

	positive := func(v time.Duration) bool { return v > 0 }
	nonNegative := func(v time.Duration) bool { return v >= 0 }
	duration(envOutboxPollInterval, &cfg.OutboxPollInterval, positive, "must be > 0")
	duration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, nonNegative, "must be >= 0")
	duration(envOutboxMaxPendingAge, &cfg.OutboxMaxPendingAge, nonNegative, "must be >= 0")
	positiveInt(envOutboxBatchSize, &cfg.OutboxBatchSize)
	positiveInt(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts)

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", raw)
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(v) {
		return 0, errors.New(rule)
	}
	return v, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(v) {
		return 0, errors.New(rule)
	}
	return v, nil
}

func main() {
	setupLogger()
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_brokers":  len(cfg.KafkaBrokers),
	}).Info("запускаем storefront")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("storefront остановлен")
}
