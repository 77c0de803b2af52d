package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func sampleOrder(customerID string, at time.Time) domain.Order {
	return domain.Order{
		CustomerID: customerID,
		Products: []domain.LineItem{
			{ProductID: "p-1", Quantity: 2, Price: 150},
			{ProductID: "p-2", Quantity: 1, Price: 200},
		},
		TotalPrice: 500,
		OrderDate:  at,
		Status:     domain.OrderStatusPending,
	}
}

func TestOrderRepository_PostgresCreateReadBack(t *testing.T) {
	ctx := context.Background()
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	now := time.Now().UTC().Round(time.Microsecond)
	order1, err := repo.Create(ctx, sampleOrder("customer-1", now.Add(-2*time.Minute)))
	if err != nil {
		t.Fatalf("create order1: %v", err)
	}
	order2, err := repo.Create(ctx, sampleOrder("customer-1", now.Add(-time.Minute)))
	if err != nil {
		t.Fatalf("create order2: %v", err)
	}
	if order1.ID == "" || order1.ID == order2.ID {
		t.Fatalf("expected distinct generated ids: %q %q", order1.ID, order2.ID)
	}

	def, _ := domain.LookupReport(domain.ReportRecentOrders)
	result, err := NewReportRepository(store).RunReport(ctx, def)
	if err != nil {
		t.Fatalf("recent orders: %v", err)
	}

	var got *domain.Order
	for i := range result.Orders {
		if result.Orders[i].ID == order1.ID {
			got = &result.Orders[i]
		}
	}
	if got == nil {
		t.Fatalf("order %s not found in recent orders", order1.ID)
	}
	if got.CustomerID != "customer-1" || got.Status != domain.OrderStatusPending || got.TotalPrice != 500 {
		t.Fatalf("unexpected order payload: %+v", got)
	}
	if len(got.Products) != 2 || got.Products[0].Subtotal() != 300 {
		t.Fatalf("unexpected products: %+v", got.Products)
	}
	if !got.OrderDate.Equal(order1.OrderDate) {
		t.Fatalf("order date mismatch: %v vs %v", got.OrderDate, order1.OrderDate)
	}
}
