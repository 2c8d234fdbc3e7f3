package service

import (
	"context"
	"time"
)

// OrderEvent is published on order lifecycle changes for downstream consumers
// (email, analytics). Amounts are in cents.
type OrderEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	EventType   string    `json:"event_type"`           // constants.EventOrder*
	OrderID     string    `json:"order_id"`
	BuyerID     string    `json:"buyer_id"`
	SellerIDs   []string  `json:"seller_ids"`
	Status      string    `json:"status"`
	FinalAmount int64     `json:"final_amount"`
	Reason      string    `json:"reason,omitempty"` // Cancellation reason when applicable
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
