package domain

import "context"

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	// Create сохраняет покупателя и возвращает его с присвоенным ID.
	// Если email уже занят, возвращает ErrDuplicateEmail.
	Create(ctx context.Context, customer Customer) (Customer, error)
	// GetByEmail ищет покупателя по точному совпадению email или возвращает ErrCustomerNotFound.
	GetByEmail(ctx context.Context, email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// List возвращает все товары в порядке хранения.
	List(ctx context.Context) ([]Product, error)
	// Get возвращает товар по ID. Некорректный ID трактуется как отсутствующий товар.
	Get(ctx context.Context, id string) (Product, error)
	// InsertMany загружает товары (используется сидером) и возвращает присвоенные ID.
	InsertMany(ctx context.Context, products []Product) ([]string, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ и возвращает его с присвоенным ID.
	Create(ctx context.Context, order Order) (Order, error)
}

// ReportRepository исполняет декларативные отчёты над хранилищем.
type ReportRepository interface {
	RunReport(ctx context.Context, def ReportDefinition) (ReportResult, error)
}
