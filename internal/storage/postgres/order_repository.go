package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const orderColumns = `id::text, customer_id, products, total_price, order_date, status`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
// Позиции заказа хранятся в JSONB-колонке products, как вложенный массив документа.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	items, err := json.Marshal(order.Products)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal order products: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, products, total_price, order_date, status)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, order.ID, order.CustomerID, items, order.TotalPrice, order.OrderDate.UTC(), string(order.Status))
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order  domain.Order
		items  []byte
		status string
	)
	if err := row.Scan(&order.ID, &order.CustomerID, &items, &order.TotalPrice, &order.OrderDate, &status); err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(items, &order.Products); err != nil {
		return domain.Order{}, fmt.Errorf("decode order products: %w", err)
	}
	order.OrderDate = order.OrderDate.UTC()
	order.Status = domain.OrderStatus(status)
	return order, nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
