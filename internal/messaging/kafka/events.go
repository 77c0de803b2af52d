package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Топики витрины.
const (
	TopicCustomerEvents  = "storefront.customer.events"
	TopicOrderEvents     = "storefront.order.events"
	TopicDeadLetterQueue = "storefront.dlq"
)

// Заголовки сообщений.
const (
	HeaderEventType     = "x-event-type"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
	HeaderReplayedFrom  = "x-replayed-from"
)

// TopicForAggregate выбирает topic по типу агрегата outbox-сообщения.
// Неизвестные агрегаты уходят в fallback.
func TopicForAggregate(aggregateType, fallback string) string {
	switch aggregateType {
	case domain.AggregateCustomer:
		return TopicCustomerEvents
	case domain.AggregateOrder:
		return TopicOrderEvents
	default:
		return fallback
	}
}

// CustomerRegisteredEvent — полезная нагрузка customer.registered.
type CustomerRegisteredEvent struct {
	CustomerID   string    `json:"customer_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewCustomerRegisteredEvent собирает событие из созданного покупателя.
func NewCustomerRegisteredEvent(customer domain.Customer) CustomerRegisteredEvent {
	return CustomerRegisteredEvent{
		CustomerID:   customer.ID,
		Email:        customer.Email,
		Name:         customer.Name,
		RegisteredAt: customer.RegistrationDate,
	}
}

// OrderPlacedEvent — полезная нагрузка order.placed.
type OrderPlacedEvent struct {
	OrderID    string            `json:"order_id"`
	CustomerID string            `json:"customer_id"`
	Items      []domain.LineItem `json:"items"`
	TotalPrice int64             `json:"total_price"`
	Status     string            `json:"status"`
	PlacedAt   time.Time         `json:"placed_at"`
}

// NewOrderPlacedEvent собирает событие из сохранённого заказа.
func NewOrderPlacedEvent(order domain.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Items:      order.Products,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		PlacedAt:   order.OrderDate,
	}
}
