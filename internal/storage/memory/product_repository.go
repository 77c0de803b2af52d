package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — in-memory каталог товаров.
type productRepositoryInMemory struct {
	store *Store
}

// NewProductRepository возвращает репозиторий товаров поверх Store.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepositoryInMemory{store: store}
}

// List возвращает все товары в порядке загрузки.
func (r *productRepositoryInMemory) List(context.Context) ([]domain.Product, error) {
	return r.store.snapshotProducts(), nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

// InsertMany добавляет товары, присваивая ID тем, у кого его нет.
func (r *productRepositoryInMemory) InsertMany(_ context.Context, products []domain.Product) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]string, 0, len(products))
	for _, product := range products {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		if _, exists := r.store.products[product.ID]; !exists {
			r.store.productOrder = append(r.store.productOrder, product.ID)
		}
		r.store.products[product.ID] = cloneProduct(product)
		ids = append(ids, product.ID)
	}
	return ids, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
