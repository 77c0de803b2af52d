package domain

// Cart — содержимое корзины в рамках одного запроса.
type Cart struct {
	Items []LineItem
}

// IsEmpty сообщает, есть ли в корзине позиции.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total считает сумму корзины как сумму price * quantity по позициям.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// CartView — то, что отображается на странице корзины.
type CartView struct {
	Items      []LineItem `json:"items"`
	TotalPrice int64      `json:"total_price"`
}

// CartConfirmation — ответ на добавление товара в корзину.
type CartConfirmation struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderConfirmation — ответ на успешное оформление заказа.
type OrderConfirmation struct {
	Message    string `json:"message"`
	OrderID    string `json:"order_id"`
	TotalPrice int64  `json:"total_price"`
}
