package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
)

// Service регистрирует покупателей и проверяет вход по email и телефону.
type Service struct {
	customers domain.CustomerRepository
	events    *outbox.Emitter
	metrics   *metrics.ShopMetrics
	logger    *log.Entry
	now       func() time.Time
}

// NewService создаёт сервис аккаунтов. events и m могут быть nil.
func NewService(customers domain.CustomerRepository, events *outbox.Emitter, m *metrics.ShopMetrics, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "account")
	}
	return &Service{
		customers: customers,
		events:    events,
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register создаёт покупателя, если email ещё не занят.
func (s *Service) Register(ctx context.Context, form domain.RegistrationForm) (domain.Customer, error) {
	if err := form.Validate(); err != nil {
		s.metrics.RecordRegistration(metrics.ResultInvalid)
		return domain.Customer{}, err
	}

	_, err := s.customers.GetByEmail(ctx, form.Email)
	switch {
	case err == nil:
		s.metrics.RecordRegistration(metrics.ResultDuplicate)
		return domain.Customer{}, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrCustomerNotFound):
		s.metrics.RecordRegistration(metrics.ResultError)
		return domain.Customer{}, fmt.Errorf("lookup customer: %w", err)
	}

	customer, err := s.customers.Create(ctx, domain.Customer{
		Name:             form.Name,
		Email:            form.Email,
		Phone:            form.Phone,
		RegistrationDate: s.now(),
	})
	if err != nil {
		// Параллельная регистрация могла занять email между проверкой и вставкой.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.metrics.RecordRegistration(metrics.ResultDuplicate)
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		s.metrics.RecordRegistration(metrics.ResultError)
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.metrics.RecordRegistration(metrics.ResultOK)
	s.logger.WithField("customer_id", customer.ID).Info("customer registered")
	s.events.Emit(ctx, domain.AggregateCustomer, customer.ID, domain.EventCustomerRegistered, kafka.NewCustomerRegisteredEvent(customer))

	return customer, nil
}

// Authenticate ищет покупателя по email и сверяет телефон.
// Неизвестный email и неверный телефон неразличимы для вызывающего.
func (s *Service) Authenticate(ctx context.Context, email, phone string) (domain.Session, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			s.metrics.RecordLogin(metrics.ResultRejected)
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(metrics.ResultError)
		return domain.Session{}, fmt.Errorf("lookup customer: %w", err)
	}
	if customer.Phone != phone {
		s.metrics.RecordLogin(metrics.ResultRejected)
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	s.metrics.RecordLogin(metrics.ResultOK)
	return domain.Session{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Name:       customer.Name,
	}, nil
}
