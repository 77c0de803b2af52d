package domain

import (
	"fmt"
	"strings"
	"time"
)

// Customer — зарегистрированный покупатель. Идентичность определяется email.
type Customer struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	RegistrationDate time.Time `json:"registration_date"`
}

// RegistrationForm — данные формы регистрации.
type RegistrationForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate проверяет обязательные поля. Строка из одних пробелов считается пустой.
// Email не нормализуется: сравнение в хранилище точное.
func (f RegistrationForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRegistration, strings.Join(missing, ", "))
	}
	return nil
}

// Session — результат успешного входа. Нигде не сохраняется.
type Session struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}
