// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item owned by a seller. Monetary amounts are stored
// as integer cents to avoid floating-point rounding in money math.
type Product struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the product.
	OwnerID       uuid.UUID // The seller who owns this product.
	Name          string    // The product's display name.
	Description   string    // A description of the product.
	Price         int64     // List price in cents. Always positive.
	DiscountPrice *int64    // Optional discounted price in cents. Strictly less than Price when set.
	Stock         int       // Units in stock. Never negative; no backorder state exists.
	IsActive      bool      // Whether the product is currently purchasable.
	CreatedAt     time.Time // Timestamp of when this product was created.
	UpdatedAt     time.Time // Timestamp of the last modification.
}

// EffectivePrice returns the price a buyer pays right now: the discount
// price when present, otherwise the list price.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}

	return p.Price
}

// HasValidDiscount reports whether the discount price, if set, is strictly
// less than the list price.
func (p *Product) HasValidDiscount() bool {
	return p.DiscountPrice == nil || *p.DiscountPrice < p.Price
}
