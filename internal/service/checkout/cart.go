package checkout

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CartProvider отдаёт корзину текущего покупателя.
type CartProvider interface {
	Current(ctx context.Context) (domain.Cart, error)
}

// EmptyCartProvider — заглушка: сессии не хранятся, поэтому корзина всегда пуста.
type EmptyCartProvider struct{}

// Current возвращает пустую корзину.
func (EmptyCartProvider) Current(context.Context) (domain.Cart, error) {
	return domain.Cart{Items: []domain.LineItem{}}, nil
}

var _ CartProvider = EmptyCartProvider{}
