package catalog

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Service отдаёт товары каталога. Изменения каталога идут только через загрузку seed.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &Service{products: products, logger: logger}
}

// ListProducts возвращает все товары без фильтрации и пагинации.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// GetProduct возвращает товар; для неизвестного или некорректного id — ErrProductNotFound.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// Seed валидирует и загружает товары. Возвращает присвоенные идентификаторы.
func (s *Service) Seed(ctx context.Context, products []domain.Product) ([]string, error) {
	for i := range products {
		if errs := products[i].ValidateInvariants(); len(errs) > 0 {
			return nil, fmt.Errorf("product #%d (%q): %w", i, products[i].Name, errors.Join(errs...))
		}
	}
	if len(products) == 0 {
		return []string{}, nil
	}

	ids, err := s.products.InsertMany(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}
	s.logger.WithField("count", len(ids)).Info("catalog seeded")
	return ids, nil
}
