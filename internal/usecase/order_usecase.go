package usecase

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/domain/service"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// ShippingAddressInput is the destination for a new order. All fields are
// required; a missing field fails the request with a validation error.
type ShippingAddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items           []OrderItemInput     `json:"items"`
	ShippingAddress ShippingAddressInput `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method" validate:"required"`
}

// OrderUsecase is the central order state machine: it enforces every
// order-lifecycle invariant, triggers stock side effects, and rejects
// operations from unauthorized or unapproved actors.
type OrderUsecase interface {
	// CreateOrder atomically creates an order from a non-empty cart,
	// capturing unit prices and reserving stock for every line item as a
	// single all-or-nothing batch.
	CreateOrder(ctx context.Context, buyerID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)

	// TransitionStatus moves the order's delivery status. Only an admin or
	// the approved seller owning every line item may call it. Cancellation
	// requires a non-empty reason and releases reserved stock exactly once.
	TransitionStatus(ctx context.Context, caller service.Caller, orderID uuid.UUID, newStatus entity.OrderStatus, reason string) (*entity.Order, error)

	// UpdatePaymentStatus moves the order's settlement status. Marking an
	// order paid is only permitted once it has been delivered.
	UpdatePaymentStatus(ctx context.Context, caller service.Caller, orderID uuid.UUID, newStatus entity.PaymentStatus) (*entity.Order, error)

	// GetOrder fetches a single order, guarded so that customers see only
	// their own orders and sellers only orders carrying their items.
	GetOrder(ctx context.Context, caller service.Caller, orderID uuid.UUID) (*entity.Order, error)

	// ListBuyerOrders returns the buyer's own orders, newest first.
	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// ListSellerOrders returns orders containing the calling seller's items.
	// The caller must be an approved seller.
	ListSellerOrders(ctx context.Context, caller service.Caller) ([]*entity.Order, error)
}
