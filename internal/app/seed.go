package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

// LoadSeedFile читает JSON-массив товаров.
func LoadSeedFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return products, nil
}

// seedCatalog загружает товары из файла, только если каталог пуст.
func seedCatalog(ctx context.Context, path string, svc *catalog.Service, logger *log.Entry) error {
	if path == "" {
		return nil
	}

	existing, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.WithField("products", len(existing)).Info("catalog is not empty, skipping seed")
		return nil
	}

	products, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	_, err = svc.Seed(ctx, products)
	return err
}

// SeedProducts открывает хранилище из cfg и добавляет в каталог товары из path,
// даже если каталог уже не пуст. Возвращает присвоенные идентификаторы.
func SeedProducts(ctx context.Context, cfg Config, path string) ([]string, error) {
	logger := log.WithField("component", "seed")

	products, err := LoadSeedFile(path)
	if err != nil {
		return nil, err
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return nil, err
	}
	defer deps.close(logger)

	ids, err := catalog.NewService(deps.products, logger).Seed(ctx, products)
	if err != nil {
		return nil, err
	}
	logger.WithFields(log.Fields{"file": path, "products": len(ids)}).Info("catalog seeded")
	return ids, nil
}
