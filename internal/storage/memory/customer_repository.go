package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepositoryInMemory — in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	store *Store
}

// NewCustomerRepository возвращает репозиторий покупателей поверх Store.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepositoryInMemory{store: store}
}

// Create сохраняет покупателя. Проверка и вставка выполняются под одной блокировкой,
// поэтому параллельные регистрации на один email не проходят обе.
func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.customerByEmail[customer.Email]; exists {
		return domain.Customer{}, domain.ErrDuplicateEmail
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	r.store.customers[customer.ID] = customer
	r.store.customerByEmail[customer.Email] = customer.ID
	return customer, nil
}

// GetByEmail ищет покупателя по точному совпадению email.
func (r *customerRepositoryInMemory) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.customerByEmail[email]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.store.customers[id], nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
