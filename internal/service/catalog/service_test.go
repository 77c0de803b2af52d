package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestCatalog_SeedListGet(t *testing.T) {
	svc := NewService(memory.NewProductRepository(memory.NewStore()), nil)
	ctx := context.Background()

	empty, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	ids, err := svc.Seed(ctx, []domain.Product{
		{Name: "Sneaker", Brand: "Acme", Price: 4999, Category: "shoes", Stock: 3},
		{Name: "Cap", Brand: "Acme", Price: 999, Category: "hats", Stock: 20},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	product, err := svc.GetProduct(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "Cap", product.Name)
}

func TestCatalog_GetUnknownOrMalformed(t *testing.T) {
	svc := NewService(memory.NewProductRepository(memory.NewStore()), nil)

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "not-an-id", ""} {
		_, err := svc.GetProduct(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrProductNotFound, id)
	}
}

func TestCatalog_SeedRejectsInvalidProducts(t *testing.T) {
	svc := NewService(memory.NewProductRepository(memory.NewStore()), nil)

	_, err := svc.Seed(context.Background(), []domain.Product{
		{Name: "ok", Price: 1},
		{Name: "", Price: -1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNameRequired)
	assert.ErrorIs(t, err, domain.ErrProductPriceInvalid)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
