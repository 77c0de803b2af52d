package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const dayLayout = "2006-01-02"

// reportRepositoryInMemory исполняет отчёты над снимком Store, повторяя
// семантику конвейера агрегации: документ без поля фильтра отбрасывается,
// группы с равным агрегатом упорядочиваются по ключу.
type reportRepositoryInMemory struct {
	store *Store
}

// NewReportRepository возвращает репозиторий отчётов поверх Store.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepositoryInMemory{store: store}
}

// document — единый доступ к полям товара или заказа по имени.
type document interface {
	number(field domain.Field) (float64, bool)
	text(field domain.Field) (string, bool)
	timestamp(field domain.Field) (time.Time, bool)
}

type productDocument struct{ p domain.Product }

func (d productDocument) number(field domain.Field) (float64, bool) {
	switch field {
	case domain.FieldPrice:
		return float64(d.p.Price), true
	case domain.FieldStock:
		return float64(d.p.Stock), true
	case domain.FieldRating:
		if d.p.Rating == nil {
			return 0, false
		}
		return float64(*d.p.Rating), true
	}
	return 0, false
}

func (d productDocument) text(field domain.Field) (string, bool) {
	switch field {
	case domain.FieldCategory:
		return d.p.Category, d.p.Category != ""
	case domain.FieldBrand:
		return d.p.Brand, d.p.Brand != ""
	}
	return "", false
}

func (productDocument) timestamp(domain.Field) (time.Time, bool) {
	return time.Time{}, false
}

type orderDocument struct{ o domain.Order }

func (d orderDocument) number(field domain.Field) (float64, bool) {
	if field == domain.FieldTotalPrice {
		return float64(d.o.TotalPrice), true
	}
	return 0, false
}

func (d orderDocument) text(field domain.Field) (string, bool) {
	if field == domain.FieldCustomerID {
		return d.o.CustomerID, d.o.CustomerID != ""
	}
	return "", false
}

func (d orderDocument) timestamp(field domain.Field) (time.Time, bool) {
	if field == domain.FieldOrderDate {
		return d.o.OrderDate, !d.o.OrderDate.IsZero()
	}
	return time.Time{}, false
}

// RunReport выполняет отчёт: match -> group -> sort -> limit.
func (r *reportRepositoryInMemory) RunReport(ctx context.Context, def domain.ReportDefinition) (domain.ReportResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReportResult{}, err
	}

	result, err := domain.NewReportResult(def)
	if err != nil {
		return domain.ReportResult{}, err
	}

	var (
		products []domain.Product
		orders   []domain.Order
		docs     []document
	)
	switch def.Source {
	case domain.CollectionProducts:
		for _, p := range r.store.snapshotProducts() {
			if matches(productDocument{p}, def.Match) {
				products = append(products, p)
				docs = append(docs, productDocument{p})
			}
		}
	case domain.CollectionOrders:
		for _, o := range r.store.snapshotOrders() {
			if matches(orderDocument{o}, def.Match) {
				orders = append(orders, o)
				docs = append(docs, orderDocument{o})
			}
		}
	}

	if def.Group != nil {
		rows := groupDocuments(docs, *def.Group)
		sortGroups(rows, def.Sort)
		result.Groups = append(result.Groups, applyLimit(rows, def.Limit)...)
		return result, nil
	}

	switch def.Source {
	case domain.CollectionProducts:
		sortDocuments(products, def.Sort, func(p domain.Product) document { return productDocument{p} })
		result.Products = append(result.Products, applyLimit(products, def.Limit)...)
	case domain.CollectionOrders:
		sortDocuments(orders, def.Sort, func(o domain.Order) document { return orderDocument{o} })
		result.Orders = append(result.Orders, applyLimit(orders, def.Limit)...)
	default:
		return domain.ReportResult{}, fmt.Errorf("report %s: unsupported source %q", def.Name, def.Source)
	}
	return result, nil
}

func matches(doc document, filter *domain.Filter) bool {
	if filter == nil {
		return true
	}
	value, ok := doc.number(filter.Field)
	if !ok {
		return false
	}
	switch filter.Op {
	case domain.CompareGTE:
		return value >= float64(filter.Value)
	case domain.CompareLTE:
		return value <= float64(filter.Value)
	}
	return false
}

type groupAccumulator struct {
	key   string
	sum   float64
	count int
	seen  int
}

func groupDocuments(docs []document, g domain.Grouping) []domain.GroupRow {
	order := make([]string, 0)
	groups := make(map[string]*groupAccumulator)

	for _, doc := range docs {
		key := groupKey(doc, g)
		acc, ok := groups[key]
		if !ok {
			acc = &groupAccumulator{key: key}
			groups[key] = acc
			order = append(order, key)
		}
		acc.count++
		if g.Func == domain.AggregateCount {
			continue
		}
		if value, ok := doc.number(g.Of); ok {
			acc.sum += value
			acc.seen++
		}
	}

	rows := make([]domain.GroupRow, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		row := domain.GroupRow{Key: acc.key, Metric: g.As}
		switch g.Func {
		case domain.AggregateCount:
			row.Value = float64(acc.count)
		case domain.AggregateSum:
			row.Value = acc.sum
		case domain.AggregateAvg:
			if acc.seen > 0 {
				row.Value = acc.sum / float64(acc.seen)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// groupKey возвращает ключ группы; отсутствующее поле даёт пустой ключ.
func groupKey(doc document, g domain.Grouping) string {
	if g.ByDay {
		ts, ok := doc.timestamp(g.Key)
		if !ok {
			return ""
		}
		return ts.UTC().Format(dayLayout)
	}
	key, _ := doc.text(g.Key)
	return key
}

func sortGroups(rows []domain.GroupRow, spec domain.SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if spec.Field != domain.GroupKeyField && a.Value != b.Value {
			if spec.Desc {
				return a.Value > b.Value
			}
			return a.Value < b.Value
		}
		if spec.Field == domain.GroupKeyField && spec.Desc {
			return a.Key > b.Key
		}
		return a.Key < b.Key
	})
}

// sortDocuments упорядочивает документы по полю сортировки; при равенстве сохраняется порядок вставки.
func sortDocuments[T any](items []T, spec domain.SortSpec, wrap func(T) document) {
	field := domain.Field(spec.Field)
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareField(wrap(items[i]), wrap(items[j]), field)
		if spec.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareField сравнивает два документа по полю. Отсутствующее значение меньше любого присутствующего.
func compareField(a, b document, field domain.Field) int {
	if ta, okA := a.timestamp(field); okA {
		tb, okB := b.timestamp(field)
		if !okB {
			return 1
		}
		return ta.Compare(tb)
	}
	if _, okB := b.timestamp(field); okB {
		return -1
	}

	na, okA := a.number(field)
	nb, okB := b.number(field)
	switch {
	case okA && okB:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case okA:
		return 1
	case okB:
		return -1
	}
	return 0
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

var _ domain.ReportRepository = (*reportRepositoryInMemory)(nil)
