package checkout

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

const (
	addedToCartMessage = "Added to cart"
	orderPlacedMessage = "Order placed successfully"
)

// Service реализует корзину и оформление заказа.
type Service struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	carts    CartProvider
	events   *outbox.Emitter
	metrics  *metrics.ShopMetrics
	logger   *log.Entry
	now      func() time.Time
}

// NewService создаёт сервис. С nil carts используется EmptyCartProvider.
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	carts CartProvider,
	events *outbox.Emitter,
	m *metrics.ShopMetrics,
	logger *log.Entry,
) *Service {
	if carts == nil {
		carts = EmptyCartProvider{}
	}
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Service{
		products: products,
		orders:   orders,
		carts:    carts,
		events:   events,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddToCart проверяет, что товар существует, и подтверждает добавление.
// Количество возвращается как есть. Корзина не сохраняется и остаток не уменьшается.
func (s *Service) AddToCart(ctx context.Context, productID string, quantity int) (domain.CartConfirmation, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.metrics.RecordCartAddition(metrics.ResultNotFound)
			return domain.CartConfirmation{}, domain.ErrProductNotFound
		}
		s.metrics.RecordCartAddition(metrics.ResultError)
		return domain.CartConfirmation{}, fmt.Errorf("get product %s: %w", productID, err)
	}

	s.metrics.RecordCartAddition(metrics.ResultOK)
	return domain.CartConfirmation{
		Message:   addedToCartMessage,
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}

// ViewCart возвращает содержимое текущей корзины и её сумму.
func (s *Service) ViewCart(ctx context.Context) (domain.CartView, error) {
	cart, err := s.carts.Current(ctx)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("load cart: %w", err)
	}
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return domain.CartView{Items: items, TotalPrice: cart.Total()}, nil
}

// CheckoutCurrent оформляет текущую корзину от имени гостя.
func (s *Service) CheckoutCurrent(ctx context.Context) (domain.OrderConfirmation, error) {
	cart, err := s.carts.Current(ctx)
	if err != nil {
		s.metrics.RecordCheckout(metrics.ResultError, 0)
		return domain.OrderConfirmation{}, fmt.Errorf("load cart: %w", err)
	}
	return s.Checkout(ctx, domain.GuestCustomerID, cart)
}

// Checkout создаёт заказ в статусе pending. Пустая корзина — ErrEmptyCart.
func (s *Service) Checkout(ctx context.Context, customerID string, cart domain.Cart) (domain.OrderConfirmation, error) {
	if cart.IsEmpty() {
		s.metrics.RecordCheckout(metrics.ResultEmptyCart, 0)
		return domain.OrderConfirmation{}, domain.ErrEmptyCart
	}

	order := domain.Order{
		CustomerID: customerID,
		Products:   append([]domain.LineItem(nil), cart.Items...),
		TotalPrice: cart.Total(),
		OrderDate:  s.now(),
		Status:     domain.OrderStatusPending,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.metrics.RecordCheckout(metrics.ResultInvalid, 0)
		return domain.OrderConfirmation{}, errors.Join(errs...)
	}

	stored, err := s.orders.Create(ctx, order)
	if err != nil {
		s.metrics.RecordCheckout(metrics.ResultError, 0)
		return domain.OrderConfirmation{}, fmt.Errorf("create order: %w", err)
	}

	s.metrics.RecordCheckout(metrics.ResultOK, stored.TotalPrice)
	s.logger.WithFields(log.Fields{
		"order_id":    stored.ID,
		"customer_id": stored.CustomerID,
		"total_price": stored.TotalPrice,
	}).Info("order placed")
	s.events.Emit(ctx, domain.AggregateOrder, stored.ID, domain.EventOrderPlaced, kafka.NewOrderPlacedEvent(stored))

	return domain.OrderConfirmation{
		Message:    orderPlacedMessage,
		OrderID:    stored.ID,
		TotalPrice: stored.TotalPrice,
	}, nil
}
