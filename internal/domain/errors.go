package domain

import "errors"

var (
	// ErrDuplicateEmail возвращается при регистрации на уже занятый email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials — email не найден или телефон не совпал.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRegistration — в форме регистрации не заполнены обязательные поля.
	ErrInvalidRegistration = errors.New("invalid registration form")
	// ErrCustomerNotFound возвращается репозиторием, если клиента с таким email нет.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound — товар не найден или идентификатор некорректен.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantity — количество в позиции заказа должно быть больше нуля.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrEmptyCart — оформление заказа с пустой корзиной.
	ErrEmptyCart = errors.New("cart is empty")
	// Ошибка отсутствующего идентификатора клиента в заказе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order total does not match items sum")
	// Ошибки валидации товара при загрузке каталога.
	ErrProductNameRequired = errors.New("product name is required")
	ErrProductPriceInvalid = errors.New("product price must be non-negative")
	ErrProductStockInvalid = errors.New("product stock must be non-negative")
	// ErrUnknownReport — отчёта с таким именем нет в каталоге.
	ErrUnknownReport = errors.New("unknown report")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsNotFound проверяет, относится ли ошибка к отсутствующим сущностям.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrUnknownReport)
}
