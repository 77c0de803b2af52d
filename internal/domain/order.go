package domain

import "time"

// OrderStatus описывает статус заказа. Жизненного цикла нет: заказ
// создаётся в pending и больше не меняется.
type OrderStatus string

const (
	// OrderStatusPending — единственный статус, который выставляет checkout.
	OrderStatusPending OrderStatus = "pending"
)

// GuestCustomerID подставляется в заказ, пока сессии не хранятся.
const GuestCustomerID = "guest"

// LineItem — одна позиция корзины или заказа.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	// Price — цена единицы товара на момент добавления в корзину.
	Price int64 `json:"price"`
}

// Subtotal возвращает price * quantity.
func (l LineItem) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Order — оформленный заказ.
type Order struct {
	ID         string      `json:"_id"`
	CustomerID string      `json:"customer_id"`
	Products   []LineItem  `json:"products"`
	TotalPrice int64       `json:"total_price"`
	OrderDate  time.Time   `json:"order_date"`
	Status     OrderStatus `json:"status"`
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Products) == 0 {
		errs = append(errs, ErrEmptyCart)
	}

	var calc int64
	for _, item := range o.Products {
		if item.Quantity <= 0 {
			errs = append(errs, ErrInvalidQuantity)
		}
		if item.Price < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += item.Subtotal()
	}
	if calc != o.TotalPrice {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
