package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReportName — имя отчёта, оно же последний сегмент URL /aggregation/{name}.
type ReportName string

const (
	ReportTopRatedProducts       ReportName = "top_rated_products"
	ReportLowStockProducts       ReportName = "low_stock_products"
	ReportCategorySales          ReportName = "category_sales"
	ReportPopularBrands          ReportName = "popular_brands"
	ReportDailySales             ReportName = "daily_sales"
	ReportRecentOrders           ReportName = "recent_orders"
	ReportCustomerOrderCount     ReportName = "customer_order_count"
	ReportTopSpendingCustomers   ReportName = "top_spending_customers"
	ReportProductCountByCategory ReportName = "product_count_by_category"
	ReportTotalPriceByBrand      ReportName = "total_price_by_brand"
	ReportAveragePriceByCategory ReportName = "average_price_by_category"
	ReportOrderCountByCustomer   ReportName = "order_count_by_customer"

	reportDailySalesTotalAlias ReportName = "daily_sales_total"
)

// GroupKeyField — имя поля ключа группы в строках группирующих отчётов.
const GroupKeyField = "_id"

// Collection — источник данных отчёта.
type Collection string

const (
	CollectionProducts Collection = "Products"
	CollectionOrders   Collection = "Orders"
)

// Field — имя поля документа, как оно хранится в базе.
type Field string

const (
	FieldRating     Field = "rating"
	FieldStock      Field = "stock"
	FieldPrice      Field = "price"
	FieldCategory   Field = "category"
	FieldBrand      Field = "brand"
	FieldCustomerID Field = "customer_id"
	FieldTotalPrice Field = "total_price"
	FieldOrderDate  Field = "order_date"
)

// Comparison — оператор фильтра.
type Comparison string

const (
	CompareGTE Comparison = "gte"
	CompareLTE Comparison = "lte"
)

// AggregateFunc — агрегирующая функция группировки.
type AggregateFunc string

const (
	AggregateCount AggregateFunc = "count"
	AggregateSum   AggregateFunc = "sum"
	AggregateAvg   AggregateFunc = "avg"
)

// Filter — стадия отбора: Field Op Value.
type Filter struct {
	Field Field
	Op    Comparison
	Value int64
}

// Grouping — стадия группировки. ByDay группирует по дате ключа в формате YYYY-MM-DD (UTC).
// Of не используется для AggregateCount.
type Grouping struct {
	Key   Field
	ByDay bool
	Func  AggregateFunc
	Of    Field
	As    string
}

// SortSpec — стадия сортировки. Для группирующих отчётов Field — это "_id"
// (ключ группы) или имя агрегата из Grouping.As.
type SortSpec struct {
	Field string
	Desc  bool
}

// ReportDefinition — декларативный конвейер отчёта: filter -> group -> sort -> limit.
// Хранилище само компилирует его в свой язык запросов.
type ReportDefinition struct {
	Name   ReportName
	Source Collection
	Match  *Filter
	Group  *Grouping
	Sort   SortSpec
	Limit  int
}

// SortsByGroupKey сообщает, что группирующий отчёт упорядочен по ключу, а не по агрегату.
func (d ReportDefinition) SortsByGroupKey() bool {
	return d.Group != nil && d.Sort.Field == GroupKeyField
}

var reportCatalog = []ReportDefinition{
	{
		Name:   ReportTopRatedProducts,
		Source: CollectionProducts,
		Match:  &Filter{Field: FieldRating, Op: CompareGTE, Value: 4},
		Sort:   SortSpec{Field: string(FieldRating), Desc: true},
		Limit:  10,
	},
	{
		Name:   ReportLowStockProducts,
		Source: CollectionProducts,
		Match:  &Filter{Field: FieldStock, Op: CompareLTE, Value: 5},
		Sort:   SortSpec{Field: string(FieldStock)},
	},
	{
		Name:   ReportCategorySales,
		Source: CollectionProducts,
		Group:  &Grouping{Key: FieldCategory, Func: AggregateSum, Of: FieldPrice, As: "total_sales"},
		Sort:   SortSpec{Field: "total_sales", Desc: true},
	},
	{
		Name:   ReportPopularBrands,
		Source: CollectionProducts,
		Group:  &Grouping{Key: FieldBrand, Func: AggregateCount, As: "product_count"},
		Sort:   SortSpec{Field: "product_count", Desc: true},
		Limit:  5,
	},
	{
		Name:   ReportDailySales,
		Source: CollectionOrders,
		Group:  &Grouping{Key: FieldOrderDate, ByDay: true, Func: AggregateSum, Of: FieldTotalPrice, As: "total_sales"},
		Sort:   SortSpec{Field: GroupKeyField, Desc: true},
	},
	{
		Name:   ReportRecentOrders,
		Source: CollectionOrders,
		Sort:   SortSpec{Field: string(FieldOrderDate), Desc: true},
		Limit:  10,
	},
	{
		Name:   ReportCustomerOrderCount,
		Source: CollectionOrders,
		Group:  &Grouping{Key: FieldCustomerID, Func: AggregateCount, As: "order_count"},
		Sort:   SortSpec{Field: "order_count", Desc: true},
		Limit:  10,
	},
	{
		Name:   ReportTopSpendingCustomers,
		Source: CollectionOrders,
		Group:  &Grouping{Key: FieldCustomerID, Func: AggregateSum, Of: FieldTotalPrice, As: "total_spent"},
		Sort:   SortSpec{Field: "total_spent", Desc: true},
		Limit:  10,
	},
	{
		Name:   ReportProductCountByCategory,
		Source: CollectionProducts,
		Group:  &Grouping{Key: FieldCategory, Func: AggregateCount, As: "product_count"},
		Sort:   SortSpec{Field: "product_count", Desc: true},
	},
	{
		Name:   ReportTotalPriceByBrand,
		Source: CollectionProducts,
		Group:  &Grouping{Key: FieldBrand, Func: AggregateSum, Of: FieldPrice, As: "total_price"},
		Sort:   SortSpec{Field: "total_price", Desc: true},
	},
	{
		Name:   ReportAveragePriceByCategory,
		Source: CollectionProducts,
		Group:  &Grouping{Key: FieldCategory, Func: AggregateAvg, Of: FieldPrice, As: "average_price"},
		Sort:   SortSpec{Field: "average_price", Desc: true},
	},
	{
		Name:   ReportOrderCountByCustomer,
		Source: CollectionOrders,
		Group:  &Grouping{Key: FieldCustomerID, Func: AggregateCount, As: "order_count"},
		Sort:   SortSpec{Field: "order_count", Desc: true},
	},
}

// ReportCatalog возвращает копию каталога отчётов в фиксированном порядке.
func ReportCatalog() []ReportDefinition {
	result := make([]ReportDefinition, len(reportCatalog))
	copy(result, reportCatalog)
	return result
}

// LookupReport ищет отчёт по имени или его псевдониму из ReportAliases.
func LookupReport(name ReportName) (ReportDefinition, bool) {
	if target, ok := ReportAliases()[name]; ok {
		name = target
	}
	for _, def := range reportCatalog {
		if def.Name == name {
			return def, true
		}
	}
	return ReportDefinition{}, false
}

// ReportAliases возвращает дополнительные имена, под которыми доступны отчёты.
// daily_sales_total — старый адрес daily_sales.
func ReportAliases() map[ReportName]ReportName {
	return map[ReportName]ReportName{reportDailySalesTotalAlias: ReportDailySales}
}

// GroupRow — строка группирующего отчёта: {"_id": Key, Metric: Value}.
type GroupRow struct {
	Key    string
	Metric string
	Value  float64
}

// MarshalJSON сериализует строку так же, как её возвращает конвейер агрегации.
func (r GroupRow) MarshalJSON() ([]byte, error) {
	key, err := json.Marshal(r.Key)
	if err != nil {
		return nil, err
	}
	metric, err := json.Marshal(r.Metric)
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(r.Value)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"_id":`)
	buf.Write(key)
	buf.WriteByte(',')
	buf.Write(metric)
	buf.WriteByte(':')
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReportResult — результат отчёта. Заполнен ровно один из срезов,
// в зависимости от источника и наличия группировки.
type ReportResult struct {
	Name     ReportName
	Products []Product
	Orders   []Order
	Groups   []GroupRow
}

// Rows возвращает строки отчёта; для пустого результата — пустой срез, не nil.
func (r ReportResult) Rows() any {
	switch {
	case r.Groups != nil:
		return r.Groups
	case r.Products != nil:
		return r.Products
	case r.Orders != nil:
		return r.Orders
	default:
		return []any{}
	}
}

// Len возвращает количество строк.
func (r ReportResult) Len() int {
	return len(r.Groups) + len(r.Products) + len(r.Orders)
}

// MarshalJSON сериализует результат как JSON-массив строк.
func (r ReportResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Rows())
}

// NewReportResult создаёт пустой результат нужной формы.
func NewReportResult(def ReportDefinition) (ReportResult, error) {
	result := ReportResult{Name: def.Name}
	switch {
	case def.Group != nil:
		result.Groups = []GroupRow{}
	case def.Source == CollectionProducts:
		result.Products = []Product{}
	case def.Source == CollectionOrders:
		result.Orders = []Order{}
	default:
		return ReportResult{}, fmt.Errorf("report %s: unsupported source %q", def.Name, def.Source)
	}
	return result, nil
}
