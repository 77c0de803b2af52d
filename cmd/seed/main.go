package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
)

const defaultTimeout = 30 * time.Second

// parseArgs собирает конфигурацию хранилища из флагов; пустые флаги берутся из окружения.
func parseArgs(args []string, getenv func(string) string, output io.Writer) (app.Config, string, error) {
	cfg := app.DefaultConfig()

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(output)
	file := fs.String("file", getenv("STORE_SEED_FILE"), "JSON array of products (fallback: STORE_SEED_FILE)")
	driver := fs.String("driver", envOr(getenv, "STORE_STORAGE_DRIVER", string(cfg.StorageDriver)), "storage driver: memory|mongo|postgres")
	dsn := fs.String("dsn", getenv("STORE_POSTGRES_DSN"), "PostgreSQL DSN (fallback: STORE_POSTGRES_DSN)")
	mongoURI := fs.String("mongo-uri", envOr(getenv, "STORE_MONGO_URI", cfg.MongoURI), "MongoDB URI")
	mongoDB := fs.String("mongo-db", envOr(getenv, "STORE_MONGO_DATABASE", cfg.MongoDatabase), "MongoDB database")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, "", err
	}

	if strings.TrimSpace(*file) == "" {
		return app.Config{}, "", errors.New("-file (or STORE_SEED_FILE) is required")
	}

	cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(*driver)))
	cfg.PostgresDSN = strings.TrimSpace(*dsn)
	cfg.MongoURI = strings.TrimSpace(*mongoURI)
	cfg.MongoDatabase = strings.TrimSpace(*mongoDB)
	if err := cfg.Validate(); err != nil {
		return app.Config{}, "", err
	}
	return cfg, strings.TrimSpace(*file), nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, file, err := parseArgs(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fail("%v", err)
	}
	if cfg.StorageDriver == app.StorageDriverMemory {
		log.Warn("memory storage is not persistent, seeding only validates the file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	ids, err := app.SeedProducts(ctx, cfg, file)
	if err != nil {
		fail("seed failed: %v", err)
	}
	fmt.Printf("seed ok: driver=%s inserted=%d\n", cfg.StorageDriver, len(ids))
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
