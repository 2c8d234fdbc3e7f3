package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a conditional stock decrement would
// drive the stock count below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the standard operations for product persistence,
// including the atomic stock movements of the inventory ledger.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock atomically subtracts quantity from the product's stock.
	// It returns ErrInsufficientStock when stock would go negative, leaving
	// the row untouched. The stock floor check and the subtraction happen in
	// a single conditional UPDATE so concurrent reservations serialize on the row.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// IncrementStock atomically adds quantity back to the product's stock.
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// CountLowStockBySeller returns how many of the seller's active products
	// have stock at or below the given threshold.
	CountLowStockBySeller(ctx context.Context, sellerID uuid.UUID, threshold int) (int64, error)
}
