// Package access provides the concrete AccessControl implementation: the
// single authorization choke point consumed by every mutating use case.
package access

import (
	"context"
	"log/slog"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accessControl implements the service.AccessControl interface.
type accessControl struct {
	sellerRepo repository.SellerRepository
	logger     *slog.Logger
}

// AccessControlParams holds dependencies for the access control service, injected by Fx.
type AccessControlParams struct {
	fx.In

	SellerRepo repository.SellerRepository
	Logger     *slog.Logger
}

// NewAccessControl is the constructor for accessControl.
func NewAccessControl(params AccessControlParams) service.AccessControl {
	return &accessControl{
		sellerRepo: params.SellerRepo,
		logger:     params.Logger,
	}
}

// Authorize resolves "may this caller perform this operation on this resource".
// Admins always pass. Sellers pass only for resources they own and, when the
// approval gate applies, only after admin review approved them. Customers pass
// only for resources they own. The server side is the single source of truth
// here; clients only reflect, never decide, authorization.
func (a *accessControl) Authorize(ctx context.Context, caller service.Caller, resourceOwnerID uuid.UUID, requireApproval bool) error {
	switch caller.Role {
	case entity.RoleAdmin:
		return nil

	case entity.RoleSeller:
		if caller.ID != resourceOwnerID {
			return errors.Wrap(domainerrors.ErrForbidden, "seller does not own this resource")
		}
		if !requireApproval {
			return nil
		}

		return a.checkApprovalGate(ctx, caller.ID)

	case entity.RoleCustomer:
		if caller.ID != resourceOwnerID {
			return errors.Wrap(domainerrors.ErrForbidden, "customer does not own this resource")
		}

		return nil

	default:
		return errors.Wrapf(domainerrors.ErrForbidden, "unknown role %q", caller.Role)
	}
}

// checkApprovalGate blocks seller operations until admin review approves the
// application, regardless of resource ownership.
func (a *accessControl) checkApprovalGate(ctx context.Context, sellerID uuid.UUID) error {
	profile, err := a.sellerRepo.FindByUserID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return errors.Wrap(domainerrors.ErrSellerNotFound, "seller profile missing")
		}

		return errors.Wrap(err, "failed to find seller profile")
	}

	if !profile.IsApproved() {
		a.logger.Debug("Seller blocked by approval gate",
			slog.String("sellerID", sellerID.String()),
			slog.String("status", profile.ApprovalStatus.String()),
		)

		return errors.Wrapf(domainerrors.ErrSellerNotApproved, "approval status is %s", profile.ApprovalStatus)
	}

	return nil
}
