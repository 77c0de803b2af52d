package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Store — общее in-memory хранилище всех коллекций. Репозитории работают
// поверх одного Store, чтобы отчёты видели те же товары и заказы.
type Store struct {
	mu sync.RWMutex

	customers       map[string]domain.Customer
	customerByEmail map[string]string

	products     map[string]domain.Product
	productOrder []string

	orders     map[string]domain.Order
	orderOrder []string
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		customers:       make(map[string]domain.Customer),
		customerByEmail: make(map[string]string),
		products:        make(map[string]domain.Product),
		orders:          make(map[string]domain.Order),
	}
}

// Ping всегда успешен: хранилище живёт в памяти процесса.
func (s *Store) Ping(context.Context) error {
	return nil
}

// snapshotProducts возвращает товары в порядке вставки.
func (s *Store) snapshotProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		result = append(result, cloneProduct(s.products[id]))
	}
	return result
}

// snapshotOrders возвращает заказы в порядке вставки.
func (s *Store) snapshotOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, 0, len(s.orderOrder))
	for _, id := range s.orderOrder {
		result = append(result, cloneOrder(s.orders[id]))
	}
	return result
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Rating != nil {
		v := *p.Rating
		p.Rating = &v
	}
	if p.Notes != nil {
		v := *p.Notes
		p.Notes = &v
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		p.ImageURL = &v
	}
	return p
}

func cloneOrder(o domain.Order) domain.Order {
	o.Products = append([]domain.LineItem(nil), o.Products...)
	return o
}

var _ domain.HealthPinger = (*Store)(nil)
