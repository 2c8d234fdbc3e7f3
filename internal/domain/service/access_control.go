// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// Caller identifies the authenticated actor behind a request: who they are
// and which role they act under. It is resolved once per request from the
// access token and passed down to the use cases.
type Caller struct {
	ID   uuid.UUID
	Role entity.Role
}

// AccessControl is the single choke point resolving "may this caller perform
// this operation on this resource". Every mutating use case routes through it
// before touching state.
type AccessControl interface {
	// Authorize permits admins unconditionally; sellers only for resources
	// they own and, when requireApproval is true, only after passing the
	// approval gate; customers only for resources they own. It returns a
	// Forbidden AppError otherwise.
	Authorize(ctx context.Context, caller Caller, resourceOwnerID uuid.UUID, requireApproval bool) error
}
