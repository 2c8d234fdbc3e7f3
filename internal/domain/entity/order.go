// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the delivery lifecycle state of an order.
type OrderStatus string

const (
	// OrderPending indicates the order was created and awaits seller processing.
	OrderPending OrderStatus = "pending"
	// OrderProcessing indicates the seller accepted the order and is preparing it.
	OrderProcessing OrderStatus = "processing"
	// OrderShipped indicates the order left the seller. No longer cancellable.
	OrderShipped OrderStatus = "shipped"
	// OrderDelivered indicates the order reached the buyer. Terminal for delivery.
	OrderDelivered OrderStatus = "delivered"
	// OrderCancelled indicates the order was cancelled and stock was restored. Fully terminal.
	OrderCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further delivery transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// orderTransitions is the delivery state machine: pending -> processing ->
// shipped -> delivered is the linear happy path; only pending and processing
// orders may be cancelled.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransitionTo reports whether the delivery state machine permits moving
// from the current status to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// PaymentStatus represents the settlement state of an order, tracked
// independently of the delivery lifecycle.
type PaymentStatus string

const (
	// PaymentPending is the initial settlement state.
	PaymentPending PaymentStatus = "pending"
	// PaymentPaid indicates settlement was confirmed. Terminal.
	PaymentPaid PaymentStatus = "paid"
	// PaymentFailed indicates a settlement attempt failed. A later attempt may still succeed.
	PaymentFailed PaymentStatus = "failed"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the payment state machine permits moving to
// next. "pending" is only ever the initial value, "paid" is terminal, and a
// failed cash-on-delivery settlement may be retried toward "paid".
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentFailed:
		return next == PaymentPaid
	default:
		return false
	}
}

// ShippingAddress is the destination captured on the order at creation time.
type ShippingAddress struct {
	Street  string // Street line of the address.
	City    string // City name.
	Country string // Country name.
	ZipCode string // Postal code.
	Phone   string // Contact phone number for the courier.
}

// OrderItem is one line of an order. The unit price is captured at purchase
// time and never recomputed from the live product price.
type OrderItem struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the line item.
	OrderID     uuid.UUID // The order this line belongs to.
	ProductID   uuid.UUID // The purchased product.
	SellerID    uuid.UUID // The seller owning the product at purchase time.
	ProductName string    // Product name snapshot for historical accuracy.
	Quantity    int       // Units purchased. Always >= 1.
	UnitPrice   int64     // Price per unit in cents, captured at order creation.
}

// Subtotal returns the line total in cents.
func (i *OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Order is the aggregate root of the order lifecycle. Delivery status and
// payment status are orthogonal axes; the Version column serializes
// concurrent mutations through optimistic locking.
type Order struct {
	ID              uuid.UUID       // The Global Unique Identifier (GUID) for the order.
	BuyerID         uuid.UUID       // The customer who placed the order.
	Items           []OrderItem     // Ordered sequence of line items. Never empty.
	ShippingAddress ShippingAddress // Destination captured at creation time.
	Status          OrderStatus     // Current delivery lifecycle state.
	PaymentStatus   PaymentStatus   // Current settlement state.
	PaymentMethod   string          // Settlement method, e.g. "cod".
	TotalAmount     int64           // Sum of line subtotals in cents.
	ShippingCharge  int64           // Flat shipping charge in cents.
	TaxAmount       int64           // Tax in cents.
	DiscountAmount  int64           // Order-level discount in cents.
	FinalAmount     int64           // TotalAmount + ShippingCharge + TaxAmount - DiscountAmount.
	CancelledReason string          // Reason supplied on cancellation. Present iff Status is cancelled.
	CancelledAt     *time.Time      // When the order was cancelled.
	PaidAt          *time.Time      // When settlement was confirmed.
	Version         int             // Optimistic lock version, bumped on every mutation.
	CreatedAt       time.Time       // Timestamp of when this order was created.
	UpdatedAt       time.Time       // Timestamp of the last modification.
}

// SellerIDs returns the distinct sellers contributing line items to this order.
func (o *Order) SellerIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.SellerID]; ok {
			continue
		}
		seen[item.SellerID] = struct{}{}
		ids = append(ids, item.SellerID)
	}

	return ids
}

// SoleSeller returns the single seller owning every line item, when there is
// exactly one. Multi-seller orders have no sole seller and report false.
func (o *Order) SoleSeller() (uuid.UUID, bool) {
	ids := o.SellerIDs()
	if len(ids) != 1 {
		return uuid.Nil, false
	}

	return ids[0], true
}

// ContainsSeller reports whether at least one line item belongs to the given seller.
func (o *Order) ContainsSeller(sellerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}

	return false
}

// OwnedEntirelyBy reports whether every line item belongs to the given seller.
// Sellers may only mutate orders they fully own.
func (o *Order) OwnedEntirelyBy(sellerID uuid.UUID) bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if item.SellerID != sellerID {
			return false
		}
	}

	return true
}

// SubtotalFor returns the sum of line subtotals belonging to the given seller,
// in cents. Multi-seller orders contribute only that seller's share to revenue.
func (o *Order) SubtotalFor(sellerID uuid.UUID) int64 {
	var sum int64
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			sum += item.Subtotal()
		}
	}

	return sum
}
