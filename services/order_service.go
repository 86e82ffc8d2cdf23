package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/models"
)

type OrderStore interface {
	Create(ctx context.Context, rec models.Order) (models.Order, error)
	CreateItem(ctx context.Context, item models.OrderItem) (models.OrderItem, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// ReceiptSender is optional; nil disables the confirmation mail.
type ReceiptSender interface {
	SendOrderConfirmation(toEmail string, orderID int, total decimal.Decimal) error
}

type CheckoutStep string

const (
	StepCreateOrder CheckoutStep = "create-order"
	StepCreateItems CheckoutStep = "create-items"
)

// CheckoutError tells which step failed. Anything created before it stays
// on the backend; OrderID and CreatedItems say what that was.
type CheckoutError struct {
	Step         CheckoutStep
	OrderID      int
	CreatedItems int
	Err          error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout failed at %s (order %d, %d items created): %v", e.Step, e.OrderID, e.CreatedItems, e.Err)
}

func (e *CheckoutError) Unwrap() error { return e.Err }

type OrderService struct {
	orders OrderStore
	mailer ReceiptSender
	logger *zap.Logger
}

func NewOrderService(orders OrderStore, mailer ReceiptSender, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orders: orders, mailer: mailer, logger: logger}
}

// Checkout creates the order and then its items one by one from the cart
// snapshots. The cart is cleared only when every item was created.
func (s *OrderService) Checkout(ctx context.Context, customer models.Customer, cart *CartService, req models.CheckoutRequest) (models.Order, error) {
	items := cart.Items()
	if len(items) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return models.Order{}, fmt.Errorf("%w: shipping address is required", models.ErrValidation)
	}

	total := CartTotal(items)
	order, err := s.orders.Create(ctx, models.Order{
		CustomerID:      customer.ID,
		OrderDate:       models.Timestamp{Time: time.Now().UTC()},
		TotalAmount:     total.InexactFloat64(),
		Status:          models.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Notes:           req.Notes,
	})
	if err != nil {
		return models.Order{}, &CheckoutError{Step: StepCreateOrder, Err: err}
	}

	for i, line := range items {
		created, err := s.orders.CreateItem(ctx, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       line.Price,
			ProductName: line.ProductName,
			ImageURL:    line.ImageURL,
		})
		if err != nil {
			s.logger.Warn("Checkout left a partial order",
				zap.Int("order_id", order.ID),
				zap.Int("created_items", i),
				zap.Error(err),
			)
			return order, &CheckoutError{Step: StepCreateItems, OrderID: order.ID, CreatedItems: i, Err: err}
		}
		order.Items = append(order.Items, created)
	}

	cart.ClearCart(ctx)
	s.sendReceipt(customer, order.ID, total)
	return order, nil
}

func (s *OrderService) sendReceipt(customer models.Customer, orderID int, total decimal.Decimal) {
	if s.mailer == nil || customer.Email == "" {
		return
	}
	if err := s.mailer.SendOrderConfirmation(customer.Email, orderID, total); err != nil {
		s.logger.Warn("Failed to send order confirmation", zap.Int("order_id", orderID), zap.Error(err))
	}
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) error {
	return s.orders.UpdateStatus(ctx, id, status)
}
