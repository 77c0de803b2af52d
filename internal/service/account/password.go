package account

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch — пароль не соответствует хешу.
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordHasher хеширует пароли bcrypt с заданной стоимостью.
// Вход по паролю пока не используется: логин сверяет email и телефон.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher возвращает хешер со стоимостью bcrypt.DefaultCost.
func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{Cost: bcrypt.DefaultCost}
}

// Hash возвращает bcrypt-хеш пароля.
func (h PasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify сравнивает пароль с хешем.
func (h PasswordHasher) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}
