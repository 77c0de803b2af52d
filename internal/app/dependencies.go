package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/account"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	httpsvc "github.com/vladislavdragonenkov/storefront/internal/service/http"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/service/reporting"
)

// Services — бизнес-сервисы витрины поверх выбранного хранилища.
type Services struct {
	Accounts *account.Service
	Catalog  *catalog.Service
	Checkout *checkout.Service
	Reports  *reporting.Service
}

// newServices связывает сервисы с репозиториями, метриками и outbox.
// При recordEvents=false события не пишутся в outbox.
func newServices(deps *runtimeDependencies, recordEvents bool, m *metrics.ShopMetrics, logger *log.Entry) *Services {
	var outboxRepo domain.OutboxRepository
	if recordEvents {
		outboxRepo = deps.outboxRepo
	} else {
		logger.Warn("outbox worker is not running and outbox is not durable, domain events are dropped")
	}
	events := outbox.NewEmitter(outboxRepo, m, logger.WithField("component", "outbox-emitter"))
	return &Services{
		Accounts: account.NewService(deps.customers, events, m, logger.WithField("component", "account")),
		Catalog:  catalog.NewService(deps.products, logger.WithField("component", "catalog")),
		Checkout: checkout.NewService(deps.products, deps.orders, checkout.EmptyCartProvider{}, events, m, logger.WithField("component", "checkout")),
		Reports:  reporting.NewService(deps.reports, m, logger.WithField("component", "reporting")),
	}
}

// handler собирает HTTP-обработчик над сервисами.
func (s *Services) handler(logger *log.Entry) *httpsvc.Handler {
	return httpsvc.NewHandler(s.Accounts, s.Catalog, s.Checkout, s.Reports, logger)
}
