package postgres

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// reportTables сопоставляет коллекции отчётов таблицам и допустимым колонкам.
// Имена колонок подставляются в SQL только из этого списка.
var reportTables = map[domain.Collection]struct {
	table   string
	columns map[domain.Field]bool
}{
	domain.CollectionProducts: {
		table: "products",
		columns: map[domain.Field]bool{
			domain.FieldRating:   true,
			domain.FieldStock:    true,
			domain.FieldPrice:    true,
			domain.FieldCategory: true,
			domain.FieldBrand:    true,
		},
	},
	domain.CollectionOrders: {
		table: "orders",
		columns: map[domain.Field]bool{
			domain.FieldCustomerID: true,
			domain.FieldTotalPrice: true,
			domain.FieldOrderDate:  true,
		},
	},
}

type reportQuery struct {
	sql  string
	args []any
}

// buildReportQuery компилирует определение отчёта в SQL.
// Для документных отчётов выбираются полные строки, для группирующих — пары (group_key, metric).
func buildReportQuery(def domain.ReportDefinition) (reportQuery, error) {
	source, ok := reportTables[def.Source]
	if !ok {
		return reportQuery{}, fmt.Errorf("report %s: unsupported source %q", def.Name, def.Source)
	}
	column := func(f domain.Field) (string, error) {
		if !source.columns[f] {
			return "", fmt.Errorf("report %s: field %q is not available in %s", def.Name, f, source.table)
		}
		return string(f), nil
	}

	var (
		q     strings.Builder
		where string
		args  []any
	)

	if def.Match != nil {
		col, err := column(def.Match.Field)
		if err != nil {
			return reportQuery{}, err
		}
		var op string
		switch def.Match.Op {
		case domain.CompareGTE:
			op = ">="
		case domain.CompareLTE:
			op = "<="
		default:
			return reportQuery{}, fmt.Errorf("report %s: unsupported comparison %q", def.Name, def.Match.Op)
		}
		// NULL не проходит сравнение, поэтому строки без значения отбрасываются.
		where = fmt.Sprintf(" WHERE %s %s $1", col, op)
		args = append(args, def.Match.Value)
	}

	if def.Group == nil {
		col, err := column(domain.Field(def.Sort.Field))
		if err != nil {
			return reportQuery{}, err
		}
		columns := productColumns
		if def.Source == domain.CollectionOrders {
			columns = orderColumns
		}
		fmt.Fprintf(&q, "SELECT %s FROM %s%s ORDER BY %s %s %s, seq ASC", columns, source.table, where, col, sortDirection(def.Sort.Desc), nullsPlacement(def.Sort.Desc))
	} else {
		g := def.Group
		keyCol, err := column(g.Key)
		if err != nil {
			return reportQuery{}, err
		}
		keyExpr := fmt.Sprintf("COALESCE(%s, '')", keyCol)
		if g.ByDay {
			keyExpr = fmt.Sprintf("COALESCE(to_char(%s AT TIME ZONE 'UTC', 'YYYY-MM-DD'), '')", keyCol)
		}

		var metricExpr string
		switch g.Func {
		case domain.AggregateCount:
			metricExpr = "COUNT(*)::float8"
		case domain.AggregateSum, domain.AggregateAvg:
			ofCol, err := column(g.Of)
			if err != nil {
				return reportQuery{}, err
			}
			fn := "SUM"
			if g.Func == domain.AggregateAvg {
				fn = "AVG"
			}
			metricExpr = fmt.Sprintf("COALESCE(%s(%s), 0)::float8", fn, ofCol)
		default:
			return reportQuery{}, fmt.Errorf("report %s: unsupported aggregate %q", def.Name, g.Func)
		}

		orderBy := fmt.Sprintf("metric %s, group_key ASC", sortDirection(def.Sort.Desc))
		if def.SortsByGroupKey() {
			orderBy = "group_key " + sortDirection(def.Sort.Desc)
		}
		fmt.Fprintf(&q, "SELECT %s AS group_key, %s AS metric FROM %s%s GROUP BY 1 ORDER BY %s",
			keyExpr, metricExpr, source.table, where, orderBy)
	}

	if def.Limit > 0 {
		fmt.Fprintf(&q, " LIMIT %d", def.Limit)
	}
	return reportQuery{sql: q.String(), args: args}, nil
}

// nullsPlacement ставит отсутствующие значения ниже любых присутствующих.
func nullsPlacement(desc bool) string {
	if desc {
		return "NULLS LAST"
	}
	return "NULLS FIRST"
}

func sortDirection(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
