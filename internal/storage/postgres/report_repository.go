package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository создаёт PostgreSQL-реализацию ReportRepository.
func NewReportRepository(store *Store) domain.ReportRepository {
	return &reportRepository{db: store.DB()}
}

func (r *reportRepository) RunReport(ctx context.Context, def domain.ReportDefinition) (domain.ReportResult, error) {
	query, err := buildReportQuery(def)
	if err != nil {
		return domain.ReportResult{}, err
	}
	result, err := domain.NewReportResult(def)
	if err != nil {
		return domain.ReportResult{}, err
	}

	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query.sql, query.args...)
	if err != nil {
		return domain.ReportResult{}, fmt.Errorf("run report %s: %w", def.Name, err)
	}
	defer rows.Close()

	switch {
	case def.Group != nil:
		for rows.Next() {
			row := domain.GroupRow{Metric: def.Group.As}
			if err := rows.Scan(&row.Key, &row.Value); err != nil {
				return domain.ReportResult{}, fmt.Errorf("scan report %s row: %w", def.Name, err)
			}
			result.Groups = append(result.Groups, row)
		}
		if err := rows.Err(); err != nil {
			return domain.ReportResult{}, fmt.Errorf("iterate report %s: %w", def.Name, err)
		}
	case def.Source == domain.CollectionProducts:
		products, err := scanProducts(rows)
		if err != nil {
			return domain.ReportResult{}, fmt.Errorf("report %s: %w", def.Name, err)
		}
		result.Products = products
	default:
		orders, err := scanOrders(rows)
		if err != nil {
			return domain.ReportResult{}, fmt.Errorf("report %s: %w", def.Name, err)
		}
		result.Orders = orders
	}
	return result, nil
}

var _ domain.ReportRepository = (*reportRepository)(nil)
