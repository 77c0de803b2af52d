package app

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverMongo    StorageDriver = "mongo"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска витрины.
type Config struct {
	HTTPAddr    string `default:":8080"`
	MetricsAddr string `default:":9090"`
	GinMode     string `default:"release"`

	StorageDriver       StorageDriver `default:"mongo"`
	MongoURI            string        `default:"mongodb://localhost:27017"`
	MongoDatabase       string        `default:"storefront"`
	PostgresDSN         string
	PostgresAutoMigrate bool `default:"true"`

	// SeedFile — JSON-массив товаров, загружаемый в пустой каталог при старте.
	SeedFile string
	// TemplatesDir переопределяет встроенные HTML-шаблоны.
	TemplatesDir string

	KafkaBrokers []string

	OutboxPollInterval time.Duration `default:"1s"`
	OutboxBatchSize    int           `default:"100"`
	OutboxMaxAttempts  int           `default:"3"`
	OutboxRetryDelay   time.Duration `default:"50ms"`
	// OutboxMaxPendingAge — возраст самого старого pending-сообщения, после которого /healthz сообщает degraded.
	OutboxMaxPendingAge time.Duration `default:"5m"`
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("apply config defaults: %v", err))
	}
	return cfg
}

// Validate проверяет согласованность настроек хранилища.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("mongo storage requires STORE_MONGO_URI and STORE_MONGO_DATABASE")
		}
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires STORE_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	return nil
}
