package reporting

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Service запускает фиксированные отчёты каталога.
type Service struct {
	reports domain.ReportRepository
	metrics *metrics.ShopMetrics
	logger  *log.Entry
}

// NewService создаёт сервис отчётов.
func NewService(reports domain.ReportRepository, m *metrics.ShopMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "reporting")
	}
	return &Service{reports: reports, metrics: m, logger: logger}
}

// Names возвращает имена всех отчётов в порядке каталога.
func (s *Service) Names() []domain.ReportName {
	catalog := domain.ReportCatalog()
	names := make([]domain.ReportName, 0, len(catalog))
	for _, def := range catalog {
		names = append(names, def.Name)
	}
	return names
}

// Run выполняет отчёт по имени. Неизвестное имя — ErrUnknownReport.
func (s *Service) Run(ctx context.Context, name domain.ReportName) (domain.ReportResult, error) {
	def, ok := domain.LookupReport(name)
	if !ok {
		return domain.ReportResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownReport, name)
	}

	start := time.Now()
	result, err := s.reports.RunReport(ctx, def)
	s.metrics.RecordReport(string(def.Name), time.Since(start), err)
	if err != nil {
		s.logger.WithError(err).WithField("report", def.Name).Error("report failed")
		return domain.ReportResult{}, fmt.Errorf("run report %s: %w", def.Name, err)
	}
	s.logger.WithFields(log.Fields{
		"report":   def.Name,
		"rows":     result.Len(),
		"duration": time.Since(start),
	}).Debug("report executed")
	return result, nil
}
