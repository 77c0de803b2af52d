package domain

import (
	"context"
	"time"
)

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// HealthPinger проверяет доступность хранилища для readiness-проб.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

const (
	// AggregateCustomer — тип агрегата для событий покупателя.
	AggregateCustomer = "customer"
	// AggregateOrder — тип агрегата для событий заказа.
	AggregateOrder = "order"

	// EventCustomerRegistered пишется в outbox после регистрации.
	EventCustomerRegistered = "customer.registered"
	// EventOrderPlaced пишется в outbox после оформления заказа.
	EventOrderPlaced = "order.placed"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
