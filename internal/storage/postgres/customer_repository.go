package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

// Create вставляет покупателя; уникальный индекс по email превращается в ErrDuplicateEmail.
func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, registration_date)
		VALUES ($1,$2,$3,$4,$5)
	`, customer.ID, customer.Name, customer.Email, customer.Phone, customer.RegistrationDate.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return customer, nil
}

// GetByEmail ищет покупателя по точному совпадению email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id::text, name, email, phone, registration_date
		FROM customers
		WHERE email = $1
	`, email).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	customer.RegistrationDate = customer.RegistrationDate.UTC()
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
