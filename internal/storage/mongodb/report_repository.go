package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type reportRepository struct {
	db *mongo.Database
}

// NewReportRepository создаёт MongoDB-реализацию ReportRepository на конвейерах агрегации.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepository{db: store.Database()}
}

// buildPipeline компилирует определение отчёта в конвейер $match/$group/$sort/$limit.
func buildPipeline(def domain.ReportDefinition) (mongo.Pipeline, error) {
	var pipeline mongo.Pipeline

	if def.Match != nil {
		var op string
		switch def.Match.Op {
		case domain.CompareGTE:
			op = "$gte"
		case domain.CompareLTE:
			op = "$lte"
		default:
			return nil, fmt.Errorf("report %s: unsupported comparison %q", def.Name, def.Match.Op)
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: string(def.Match.Field), Value: bson.D{{Key: op, Value: def.Match.Value}}},
		}}})
	}

	sort := bson.D{}
	if def.Group != nil {
		g := def.Group
		var key any = "$" + string(g.Key)
		if g.ByDay {
			key = bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$" + string(g.Key)},
			}}}
		}

		var acc bson.D
		switch g.Func {
		case domain.AggregateCount:
			acc = bson.D{{Key: "$sum", Value: 1}}
		case domain.AggregateSum:
			acc = bson.D{{Key: "$sum", Value: "$" + string(g.Of)}}
		case domain.AggregateAvg:
			acc = bson.D{{Key: "$avg", Value: "$" + string(g.Of)}}
		default:
			return nil, fmt.Errorf("report %s: unsupported aggregate %q", def.Name, g.Func)
		}

		pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
			{Key: domain.GroupKeyField, Value: key},
			{Key: g.As, Value: acc},
		}}})

		sort = append(sort, bson.E{Key: def.Sort.Field, Value: sortOrder(def.Sort.Desc)})
		if !def.SortsByGroupKey() {
			sort = append(sort, bson.E{Key: domain.GroupKeyField, Value: 1})
		}
	} else {
		sort = append(sort,
			bson.E{Key: def.Sort.Field, Value: sortOrder(def.Sort.Desc)},
			bson.E{Key: "_id", Value: 1},
		)
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})

	if def.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: def.Limit}})
	}
	return pipeline, nil
}

func sortOrder(desc bool) int {
	if desc {
		return -1
	}
	return 1
}

func (r *reportRepository) RunReport(ctx context.Context, def domain.ReportDefinition) (domain.ReportResult, error) {
	pipeline, err := buildPipeline(def)
	if err != nil {
		return domain.ReportResult{}, err
	}
	result, err := domain.NewReportResult(def)
	if err != nil {
		return domain.ReportResult{}, err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	cursor, err := r.db.Collection(string(def.Source)).Aggregate(ctx, pipeline)
	if err != nil {
		return domain.ReportResult{}, fmt.Errorf("aggregate report %s: %w", def.Name, err)
	}

	switch {
	case def.Group != nil:
		var rows []bson.M
		if err := cursor.All(ctx, &rows); err != nil {
			return domain.ReportResult{}, fmt.Errorf("decode report %s: %w", def.Name, err)
		}
		for _, row := range rows {
			result.Groups = append(result.Groups, decodeGroupRow(row, def.Group.As))
		}
	case def.Source == domain.CollectionProducts:
		var docs []productDocument
		if err := cursor.All(ctx, &docs); err != nil {
			return domain.ReportResult{}, fmt.Errorf("decode report %s: %w", def.Name, err)
		}
		result.Products = productsToDomain(docs)
	default:
		var docs []orderDocument
		if err := cursor.All(ctx, &docs); err != nil {
			return domain.ReportResult{}, fmt.Errorf("decode report %s: %w", def.Name, err)
		}
		result.Orders = ordersToDomain(docs)
	}
	return result, nil
}

// decodeGroupRow читает строку {_id, <metric>}. Отсутствующий ключ (null) даёт пустую строку.
func decodeGroupRow(row bson.M, metric string) domain.GroupRow {
	out := domain.GroupRow{Metric: metric, Value: toFloat(row[metric])}
	switch key := row[domain.GroupKeyField].(type) {
	case string:
		out.Key = key
	case nil:
	default:
		out.Key = fmt.Sprint(key)
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	}
	return 0
}

var _ domain.ReportRepository = (*reportRepository)(nil)
