// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus represents the review state of a seller application.
type ApprovalStatus string

const (
	// ApprovalPending indicates the application awaits admin review.
	ApprovalPending ApprovalStatus = "pending"
	// ApprovalApproved indicates the seller passed admin review and may sell.
	ApprovalApproved ApprovalStatus = "approved"
	// ApprovalRejected indicates the application was rejected or the seller was demoted.
	ApprovalRejected ApprovalStatus = "rejected"
)

// String returns the string representation of the ApprovalStatus.
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsValid checks if the ApprovalStatus is a valid value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}

// SellerProfile holds data specific to the "seller" role, including the
// approval state machine that gates every selling capability.
type SellerProfile struct {
	UserID          uuid.UUID      // Foreign Key that links this profile to a core User entity.
	BusinessName    string         // The seller's official business name.
	ApprovalStatus  ApprovalStatus // Current review state: pending, approved or rejected.
	RejectionReason string         // Reason for rejection. Present iff ApprovalStatus is rejected.
	DecidedBy       *uuid.UUID     // Admin who made the most recent decision, nil before first review.
	DecidedAt       *time.Time     // When the most recent decision was made.
	CreatedAt       time.Time      // Timestamp of when this profile was created.
	UpdatedAt       time.Time      // Timestamp of the last modification to this profile.
}

// IsApproved reports whether the seller has passed admin review.
func (p *SellerProfile) IsApproved() bool {
	return p.ApprovalStatus == ApprovalApproved
}

// CanDecide reports whether an applicant review decision (approve/reject)
// is currently permitted. First-time decisions apply only to pending applications;
// demoting an approved seller goes through the separate Demote path.
func (p *SellerProfile) CanDecide() bool {
	return p.ApprovalStatus == ApprovalPending
}

// CanResubmit reports whether the seller may re-enter the review cycle.
// Only rejected applications can be resubmitted.
func (p *SellerProfile) CanResubmit() bool {
	return p.ApprovalStatus == ApprovalRejected
}

// CanDemote reports whether the admin demotion path applies.
// Demotion models approved -> rejected and is distinct from the applicant flow.
func (p *SellerProfile) CanDemote() bool {
	return p.ApprovalStatus == ApprovalApproved
}
