package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestCustomerRepository_CreateAndGetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository(memory.NewStore())

	created, err := repo.Create(ctx, domain.Customer{Name: "Ann", Email: "ann@example.com", Phone: "+100"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.GetByEmail(ctx, "ANN@example.com")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = repo.Create(ctx, domain.Customer{Name: "Other", Email: "ann@example.com", Phone: "+200"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCustomerRepository_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository(memory.NewStore())

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, domain.Customer{Name: "Race", Email: "race@example.com", Phone: "1"})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
