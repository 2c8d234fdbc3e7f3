package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// Decision is an admin's verdict on a pending seller application.
type Decision string

const (
	// DecisionApprove grants selling capability.
	DecisionApprove Decision = "approve"
	// DecisionReject denies the application. Requires a non-empty reason.
	DecisionReject Decision = "reject"
)

// IsValid checks if the Decision is a valid value.
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// ApprovalStatusOutput is the approval gate's read-only answer.
type ApprovalStatusOutput struct {
	IsApproved bool                  `json:"is_approved"`
	Status     entity.ApprovalStatus `json:"status"`
	Reason     string                `json:"reason,omitempty"`
}

// ApprovalUsecase owns the seller onboarding state machine and the boolean
// gate consumed by every seller-facing operation.
type ApprovalUsecase interface {
	// CheckApproval returns the seller's current approval state.
	CheckApproval(ctx context.Context, sellerID uuid.UUID) (*ApprovalStatusOutput, error)

	// Decide applies an admin verdict to a pending application. Rejections
	// require a non-empty reason. Decisions on non-pending profiles fail
	// with an invalid-transition error.
	Decide(ctx context.Context, adminID, sellerID uuid.UUID, decision Decision, reason string) (*entity.SellerProfile, error)

	// Demote revokes an approved seller's selling capability. This is a
	// distinct, explicitly-logged admin action, never an overload of the
	// applicant review flow. Requires a non-empty reason.
	Demote(ctx context.Context, adminID, sellerID uuid.UUID, reason string) (*entity.SellerProfile, error)

	// Resubmit moves a rejected application back to pending for a new
	// review cycle.
	Resubmit(ctx context.Context, sellerID uuid.UUID) (*entity.SellerProfile, error)

	// ListByStatus returns seller profiles in the given approval state for
	// the admin review queue.
	ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.SellerProfile, error)
}
