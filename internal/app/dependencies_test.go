package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

func newMemoryServices(t *testing.T, recordEvents bool) (*Services, *runtimeDependencies) {
	t.Helper()
	logger := log.WithField("test", "services")
	deps, err := initRuntimeDependencies(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)
	return newServices(deps, recordEvents, metrics.NewShopMetricsWithRegisterer(prometheus.NewRegistry()), logger), deps
}

func TestNewServices_RegistrationWritesOutbox(t *testing.T) {
	services, deps := newMemoryServices(t, true)
	ctx := context.Background()

	_, err := services.Accounts.Register(ctx, domain.RegistrationForm{Name: "Ann", Email: "ann@example.com", Phone: "1"})
	require.NoError(t, err)

	stats, err := deps.outboxRepo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingCount)
	assert.NotNil(t, services.handler(log.WithField("test", "services")))
}

func TestNewServices_WithoutEventsOutboxStaysEmpty(t *testing.T) {
	services, deps := newMemoryServices(t, false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := services.Accounts.Register(ctx, domain.RegistrationForm{
			Name:  "Ann",
			Email: fmt.Sprintf("ann-%d@example.com", i),
			Phone: "1",
		})
		require.NoError(t, err)
	}
	_, err := services.Checkout.Checkout(ctx, "c1", domain.Cart{Items: []domain.LineItem{{ProductID: "p", Quantity: 1, Price: 100}}})
	require.NoError(t, err)

	stats, err := deps.outboxRepo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.PendingCount)
}

func TestRecordsEvents(t *testing.T) {
	memoryDeps := &runtimeDependencies{}
	assert.False(t, memoryDeps.recordsEvents(false), "memory outbox without a worker is never drained")
	assert.True(t, memoryDeps.recordsEvents(true))

	durable := &runtimeDependencies{durableOutbox: true}
	assert.True(t, durable.recordsEvents(false))
	assert.True(t, durable.recordsEvents(true))
}

func TestSeedCatalog(t *testing.T) {
	services, _ := newMemoryServices(t, true)
	ctx := context.Background()
	logger := log.WithField("test", "seed")

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Runner","brand":"Acme","price":12999,"category":"shoes","stock":2,"rating":5},
		{"name":"Cap","brand":"Hatty","price":1500,"category":"hats","stock":40,"notes":"one size"}
	]`), 0o600))

	require.NoError(t, seedCatalog(ctx, path, services.Catalog, logger))
	require.NoError(t, seedCatalog(ctx, path, services.Catalog, logger))

	products, err := services.Catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2, "second seed must be skipped for a non-empty catalog")
	require.NotNil(t, products[0].Rating)
	assert.Equal(t, 5, *products[0].Rating)
}

func TestSeedCatalog_Errors(t *testing.T) {
	services, _ := newMemoryServices(t, true)
	logger := log.WithField("test", "seed")

	assert.NoError(t, seedCatalog(context.Background(), "", services.Catalog, logger))
	assert.Error(t, seedCatalog(context.Background(), filepath.Join(t.TempDir(), "missing.json"), services.Catalog, logger))

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":`), 0o600))
	assert.Error(t, seedCatalog(context.Background(), broken, services.Catalog, logger))
}

func TestSeedProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Runner","brand":"Acme","price":12999,"category":"shoes","stock":2},
		{"name":"Cap","brand":"Hatty","price":1500,"category":"hats","stock":40}
	]`), 0o600))

	ids, err := SeedProducts(context.Background(), memoryConfig(), path)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestSeedProducts_Errors(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[{"name":"","price":-1,"stock":1}]`), 0o600))

	_, err := SeedProducts(context.Background(), memoryConfig(), invalid)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNameRequired)

	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"
	_, err = SeedProducts(context.Background(), cfg, invalid)
	assert.ErrorContains(t, err, "unsupported storage driver")
}
