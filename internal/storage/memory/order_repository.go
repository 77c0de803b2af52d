package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// Create сохраняет новый заказ; ID присваивается, если не задан.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if _, exists := r.store.orders[order.ID]; !exists {
		r.store.orderOrder = append(r.store.orderOrder, order.ID)
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.store.orders[order.ID] = cloneOrder(order)
	return order, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
