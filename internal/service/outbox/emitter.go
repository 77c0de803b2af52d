package outbox

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Emitter записывает доменные события в outbox. Ошибки записи логируются и
// не прерывают бизнес-операцию: основная запись к этому моменту уже сделана.
type Emitter struct {
	repo    domain.OutboxRepository
	metrics *metrics.ShopMetrics
	logger  *log.Entry
}

// NewEmitter создаёт Emitter. С nil repo события отбрасываются.
func NewEmitter(repo domain.OutboxRepository, m *metrics.ShopMetrics, logger *log.Entry) *Emitter {
	if logger == nil {
		logger = log.WithField("component", "outbox-emitter")
	}
	return &Emitter{repo: repo, metrics: m, logger: logger}
}

// Emit сериализует payload и ставит событие в очередь.
func (e *Emitter) Emit(ctx context.Context, aggregateType, aggregateID, eventType string, payload any) {
	if e == nil || e.repo == nil {
		return
	}

	fields := log.Fields{
		"aggregate_type": aggregateType,
		"aggregate_id":   aggregateID,
		"event":          eventType,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		e.logger.WithError(err).WithFields(fields).Error("marshal event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       data,
	}
	if _, err := e.repo.Enqueue(ctx, msg); err != nil {
		e.logger.WithError(err).WithFields(fields).Error("enqueue event failed")
		return
	}
	e.metrics.RecordOutboxEvent()
}
