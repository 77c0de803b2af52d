package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/mongodb"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

const storageCloseTimeout = 5 * time.Second

// runtimeDependencies — репозитории выбранного хранилища.
type runtimeDependencies struct {
	customers  domain.CustomerRepository
	products   domain.ProductRepository
	orders     domain.OrderRepository
	reports    domain.ReportRepository
	outboxRepo domain.OutboxRepository
	pinger     domain.HealthPinger
	closeFn    func() error
	// durableOutbox — outbox переживает перезапуск и будет разобран worker'ом позже.
	durableOutbox bool
}

// recordsEvents сообщает, есть ли смысл писать события в outbox:
// in-memory outbox без worker'а никто не разберёт.
func (d *runtimeDependencies) recordsEvents(workerRunning bool) bool {
	return workerRunning || d.durableOutbox
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// initRuntimeDependencies открывает хранилище по cfg.StorageDriver.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case StorageDriverMongo:
		return initMongo(ctx, cfg, logger)
	case StorageDriverPostgres:
		return initPostgres(ctx, cfg, logger)
	default:
		return initMemory(logger), nil
	}
}

func initMemory(logger *log.Entry) *runtimeDependencies {
	store := memory.NewStore()
	logger.Info("using in-memory storage")
	return &runtimeDependencies{
		customers:  memory.NewCustomerRepository(store),
		products:   memory.NewProductRepository(store),
		orders:     memory.NewOrderRepository(store),
		reports:    memory.NewReportRepository(store),
		outboxRepo: memory.NewOutboxRepository(),
		pinger:     store,
	}
}

func initMongo(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	store, err := mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		closeMongo(store, logger)
		return nil, err
	}

	logger.WithField("database", cfg.MongoDatabase).Info("using mongo storage")
	return &runtimeDependencies{
		customers:  mongodb.NewCustomerRepository(store),
		products:   mongodb.NewProductRepository(store),
		orders:     mongodb.NewOrderRepository(store),
		reports:    mongodb.NewReportRepository(store),
		outboxRepo: mongodb.NewOutboxRepository(store),
		pinger:     store,
		closeFn: func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), storageCloseTimeout)
			defer cancel()
			return store.Close(closeCtx)
		},
		durableOutbox: true,
	}, nil
}

func closeMongo(store *mongodb.Store, logger *log.Entry) {
	closeCtx, cancel := context.WithTimeout(context.Background(), storageCloseTimeout)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logger.WithError(err).Warn("failed to close mongo client")
	}
}

func initPostgres(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	logger.WithField("auto_migrate", cfg.PostgresAutoMigrate).Info("using postgres storage")
	return &runtimeDependencies{
		customers:  postgres.NewCustomerRepository(store),
		products:   postgres.NewProductRepository(store),
		orders:     postgres.NewOrderRepository(store),
		reports:    postgres.NewReportRepository(store),
		outboxRepo:    postgres.NewOutboxRepository(store),
		pinger:        store,
		closeFn:       store.Close,
		durableOutbox: true,
	}, nil
}
