package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// envelope — формат сообщения в топиках витрины.
type envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
	PublishedAt   time.Time       `json:"published_at"`
}

// OutboxTopicPublisher публикует outbox-сообщения в topic их агрегата.
type OutboxTopicPublisher struct {
	producer *Producer
	fallback string
}

// NewOutboxPublisher создаёт паблишер; fallback используется для неизвестных агрегатов.
func NewOutboxPublisher(producer *Producer, fallback string) *OutboxTopicPublisher {
	if fallback == "" {
		fallback = TopicOrderEvents
	}
	return &OutboxTopicPublisher{producer: producer, fallback: fallback}
}

// Publish отправляет сообщение, ключом служит идентификатор агрегата.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka outbox publisher is not initialized")
	}
	topic := TopicForAggregate(event.AggregateType, p.fallback)
	return p.producer.PublishEvent(ctx, topic, messageKey(event), newEnvelope(event))
}

// DeadLetterPublisher отправляет сообщения, исчерпавшие попытки, в DLQ.
type DeadLetterPublisher struct {
	producer *Producer
	topic    string
}

// NewDeadLetterPublisher создаёт паблишер DLQ.
func NewDeadLetterPublisher(producer *Producer, topic string) *DeadLetterPublisher {
	if topic == "" {
		topic = TopicDeadLetterQueue
	}
	return &DeadLetterPublisher{producer: producer, topic: topic}
}

// PublishFailed кладёт сообщение в DLQ с причиной ошибки в заголовках.
func (p *DeadLetterPublisher) PublishFailed(ctx context.Context, event domain.OutboxMessage, cause error) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka dlq publisher is not initialized")
	}

	value, err := json.Marshal(newEnvelope(event))
	if err != nil {
		return err
	}
	headers := map[string]string{
		HeaderEventType:     event.EventType,
		HeaderOriginalTopic: TopicForAggregate(event.AggregateType, TopicOrderEvents),
		HeaderFailedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if cause != nil {
		headers[HeaderErrorMessage] = cause.Error()
	}
	return p.producer.PublishRaw(ctx, p.topic, messageKey(event), value, headers)
}

func newEnvelope(event domain.OutboxMessage) envelope {
	payload := json.RawMessage(event.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       payload,
		CreatedAt:     event.CreatedAt,
		PublishedAt:   time.Now().UTC(),
	}
}

func messageKey(event domain.OutboxMessage) string {
	if event.AggregateID != "" {
		return event.AggregateID
	}
	return event.ID
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
