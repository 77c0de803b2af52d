package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func intPtr(v int) *int { return &v }

type reportFixture struct {
	reports domain.ReportRepository
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	_, err := memory.NewProductRepository(store).InsertMany(ctx, []domain.Product{
		{ID: "p1", Name: "Oud", Brand: "Amouage", Price: 300, Category: "perfume", Stock: 2, Rating: intPtr(5)},
		{ID: "p2", Name: "Musk", Brand: "Kilian", Price: 100, Category: "perfume", Stock: 12, Rating: intPtr(4)},
		{ID: "p3", Name: "Candle", Brand: "Kilian", Price: 150, Category: "home", Stock: 5, Rating: intPtr(3)},
		{ID: "p4", Name: "Soap", Brand: "Aesop", Price: 50, Category: "bath", Stock: 0},
		{ID: "p5", Name: "Lotion", Brand: "Aesop", Price: 250, Category: "bath", Stock: 7, Rating: intPtr(4)},
	})
	require.NoError(t, err)

	orders := memory.NewOrderRepository(store)
	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 23, 30, 0, 0, time.UTC)
	for _, o := range []domain.Order{
		{CustomerID: "c1", TotalPrice: 100, OrderDate: day1},
		{CustomerID: "c2", TotalPrice: 400, OrderDate: day1.Add(time.Hour)},
		{CustomerID: "c1", TotalPrice: 50, OrderDate: day2},
	} {
		o.Status = domain.OrderStatusPending
		_, err := orders.Create(ctx, o)
		require.NoError(t, err)
	}

	return reportFixture{reports: memory.NewReportRepository(store)}
}

func (f reportFixture) run(t *testing.T, name domain.ReportName) domain.ReportResult {
	t.Helper()
	def, ok := domain.LookupReport(name)
	require.True(t, ok, "report %s", name)
	result, err := f.reports.RunReport(context.Background(), def)
	require.NoError(t, err)
	return result
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestReportRepository_TopRatedProducts(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportTopRatedProducts)

	// p4 без рейтинга и p3 с рейтингом 3 отбрасываются; равные рейтинги сохраняют порядок вставки.
	assert.Equal(t, []string{"p1", "p2", "p5"}, productIDs(result.Products))
}

func TestReportRepository_LowStockProducts(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportLowStockProducts)

	assert.Equal(t, []string{"p4", "p1", "p3"}, productIDs(result.Products))
	for _, p := range result.Products {
		assert.LessOrEqual(t, p.Stock, 5)
	}
}

func TestReportRepository_CategorySales(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportCategorySales)

	assert.Equal(t, []domain.GroupRow{
		{Key: "perfume", Metric: "total_sales", Value: 400},
		{Key: "bath", Metric: "total_sales", Value: 300},
		{Key: "home", Metric: "total_sales", Value: 150},
	}, result.Groups)

	var sum float64
	for _, row := range result.Groups {
		sum += row.Value
	}
	assert.Equal(t, float64(850), sum)
}

func TestReportRepository_PopularBrandsTieBreak(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportPopularBrands)

	assert.Equal(t, []domain.GroupRow{
		{Key: "Aesop", Metric: "product_count", Value: 2},
		{Key: "Kilian", Metric: "product_count", Value: 2},
		{Key: "Amouage", Metric: "product_count", Value: 1},
	}, result.Groups)
}

func TestReportRepository_AveragePriceByCategory(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportAveragePriceByCategory)

	require.Len(t, result.Groups, 3)
	assert.Equal(t, "perfume", result.Groups[0].Key)
	assert.InDelta(t, 200, result.Groups[0].Value, 0.0001)
	// bath и home делят среднее 150: порядок по ключу.
	assert.Equal(t, "bath", result.Groups[1].Key)
	assert.Equal(t, "home", result.Groups[2].Key)
	assert.InDelta(t, 150, result.Groups[2].Value, 0.0001)
}

func TestReportRepository_DailySales(t *testing.T) {
	f := newReportFixture(t)
	result := f.run(t, domain.ReportDailySales)

	assert.Equal(t, []domain.GroupRow{
		{Key: "2024-05-02", Metric: "total_sales", Value: 50},
		{Key: "2024-05-01", Metric: "total_sales", Value: 500},
	}, result.Groups)
}

func TestReportRepository_OrdersReports(t *testing.T) {
	f := newReportFixture(t)

	recent := f.run(t, domain.ReportRecentOrders)
	require.Len(t, recent.Orders, 3)
	assert.Equal(t, int64(50), recent.Orders[0].TotalPrice)
	assert.Equal(t, int64(100), recent.Orders[2].TotalPrice)

	spending := f.run(t, domain.ReportTopSpendingCustomers)
	assert.Equal(t, []domain.GroupRow{
		{Key: "c2", Metric: "total_spent", Value: 400},
		{Key: "c1", Metric: "total_spent", Value: 150},
	}, spending.Groups)

	counts := f.run(t, domain.ReportOrderCountByCustomer)
	assert.Equal(t, []domain.GroupRow{
		{Key: "c1", Metric: "order_count", Value: 2},
		{Key: "c2", Metric: "order_count", Value: 1},
	}, counts.Groups)
}

func TestReportRepository_EmptyStore(t *testing.T) {
	reports := memory.NewReportRepository(memory.NewStore())
	for _, def := range domain.ReportCatalog() {
		result, err := reports.RunReport(context.Background(), def)
		require.NoError(t, err)
		assert.Zero(t, result.Len(), "report %s", def.Name)
	}
}

func TestReportRepository_CanceledContext(t *testing.T) {
	f := newReportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	def, _ := domain.LookupReport(domain.ReportCategorySales)
	_, err := f.reports.RunReport(ctx, def)
	assert.ErrorIs(t, err, context.Canceled)
}
