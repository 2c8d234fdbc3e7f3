package repository

import (
	"context"
	"errors"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSellerNotFound is a domain-specific error returned when a seller profile is not found.
var ErrSellerNotFound = errors.New("seller profile not found")

// SellerRepository defines the standard operations for seller profile persistence.
type SellerRepository interface {
	// FindByUserID retrieves the seller profile belonging to the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error)

	// Update persists the current approval state of the profile.
	Update(ctx context.Context, profile *entity.SellerProfile) error

	// ListByStatus retrieves seller profiles filtered by approval status,
	// newest application first.
	ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.SellerProfile, error)

	// CountByStatus returns the number of seller profiles per approval status.
	CountByStatus(ctx context.Context) (map[entity.ApprovalStatus]int64, error)
}
