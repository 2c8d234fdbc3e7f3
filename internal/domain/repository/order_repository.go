package repository

import (
	"context"
	"errors"
	"time"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrStaleOrder is returned when an optimistic-locked update targets a version
// that is no longer current, i.e. the order changed since it was read.
var ErrStaleOrder = errors.New("order was modified concurrently")

// OrderRepository defines the standard operations for order persistence.
// Mutations are serialized per order through an optimistic version column.
type OrderRepository interface {
	// Create persists a new order entity with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Update persists the order's mutable fields guarded by the version the
	// entity was read at. Returns ErrStaleOrder when the row's version no
	// longer matches, in which case nothing is written.
	Update(ctx context.Context, order *entity.Order) error

	// ListByBuyer retrieves the buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// ListBySeller retrieves orders containing at least one of the seller's
	// line items, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)

	// CountByStatusForSeller returns the number of the seller's orders per
	// delivery status.
	CountByStatusForSeller(ctx context.Context, sellerID uuid.UUID) (map[entity.OrderStatus]int64, error)

	// RevenueForSeller sums the seller's line-item subtotals, in cents, over
	// orders that are both delivered and paid. When since is non-nil only
	// orders paid at or after that instant are counted.
	RevenueForSeller(ctx context.Context, sellerID uuid.UUID, since *time.Time) (int64, error)
}
