// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// approvalService implements the ApprovalUsecase interface. It owns the
// seller onboarding state machine: pending -> approved, pending -> rejected,
// rejected -> pending (resubmit), and the distinct approved -> rejected
// demotion path.
type approvalService struct {
	txManager  repository.TransactionManager
	sellerRepo repository.SellerRepository
	logger     *slog.Logger
}

// ApprovalServiceParams holds dependencies for ApprovalService, injected by Fx.
type ApprovalServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	SellerRepo repository.SellerRepository
	Logger     *slog.Logger
}

// NewApprovalService is the constructor for approvalService.
func NewApprovalService(params ApprovalServiceParams) usecase.ApprovalUsecase {
	return &approvalService{
		txManager:  params.TxManager,
		sellerRepo: params.SellerRepo,
		logger:     params.Logger,
	}
}

// CheckApproval returns the seller's current approval state. Read-only.
func (srv *approvalService) CheckApproval(ctx context.Context, sellerID uuid.UUID) (*usecase.ApprovalStatusOutput, error) {
	profile, err := srv.sellerRepo.FindByUserID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSellerNotFound, "unknown seller")
		}

		return nil, errors.Wrap(err, "failed to find seller profile")
	}

	return &usecase.ApprovalStatusOutput{
		IsApproved: profile.IsApproved(),
		Status:     profile.ApprovalStatus,
		Reason:     profile.RejectionReason,
	}, nil
}

// Decide applies an admin verdict to a pending seller application.
func (srv *approvalService) Decide(ctx context.Context, adminID, sellerID uuid.UUID, decision usecase.Decision, reason string) (*entity.SellerProfile, error) {
	if !decision.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown decision %q", decision)
	}
	if decision == usecase.DecisionReject && strings.TrimSpace(reason) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rejection requires a reason")
	}

	var decided *entity.SellerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		profile, err := sellerRepo.FindByUserID(ctx, sellerID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerNotFound) {
				return errors.Wrap(domainerrors.ErrSellerNotFound, "unknown seller")
			}

			return errors.Wrap(err, "failed to find seller profile")
		}

		// First-time decisions only apply to pending applications. Revoking
		// an approved seller goes through Demote, never through this path.
		if !profile.CanDecide() {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "cannot decide on a %s application", profile.ApprovalStatus)
		}

		applyDecision(profile, adminID, decision, reason)

		if err := sellerRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update seller profile")
		}
		decided = profile

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute seller decision transaction")
	}

	srv.logger.Info("Seller application decided",
		slog.String("sellerID", sellerID.String()),
		slog.String("adminID", adminID.String()),
		slog.String("decision", string(decision)),
	)

	return decided, nil
}

// Demote revokes an approved seller's selling capability. Existing orders are
// unaffected; only the approval gate changes.
func (srv *approvalService) Demote(ctx context.Context, adminID, sellerID uuid.UUID, reason string) (*entity.SellerProfile, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "demotion requires a reason")
	}

	var demoted *entity.SellerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		profile, err := sellerRepo.FindByUserID(ctx, sellerID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerNotFound) {
				return errors.Wrap(domainerrors.ErrSellerNotFound, "unknown seller")
			}

			return errors.Wrap(err, "failed to find seller profile")
		}

		if !profile.CanDemote() {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "cannot demote a %s seller", profile.ApprovalStatus)
		}

		applyDecision(profile, adminID, usecase.DecisionReject, reason)

		if err := sellerRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update seller profile")
		}
		demoted = profile

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute seller demotion transaction")
	}

	// Demotion is a heavier action than an applicant rejection, so it gets
	// its own audit line at warn level.
	srv.logger.Warn("Approved seller demoted",
		slog.String("sellerID", sellerID.String()),
		slog.String("adminID", adminID.String()),
		slog.String("reason", reason),
	)

	return demoted, nil
}

// Resubmit moves a rejected application back to pending for a new review cycle.
func (srv *approvalService) Resubmit(ctx context.Context, sellerID uuid.UUID) (*entity.SellerProfile, error) {
	var resubmitted *entity.SellerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		profile, err := sellerRepo.FindByUserID(ctx, sellerID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerNotFound) {
				return errors.Wrap(domainerrors.ErrSellerNotFound, "unknown seller")
			}

			return errors.Wrap(err, "failed to find seller profile")
		}

		if !profile.CanResubmit() {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "cannot resubmit a %s application", profile.ApprovalStatus)
		}

		profile.ApprovalStatus = entity.ApprovalPending
		profile.RejectionReason = ""
		profile.DecidedBy = nil
		profile.DecidedAt = nil

		if err := sellerRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update seller profile")
		}
		resubmitted = profile

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute seller resubmission transaction")
	}

	srv.logger.Info("Seller application resubmitted", slog.String("sellerID", sellerID.String()))

	return resubmitted, nil
}

// ListByStatus returns seller profiles in the given approval state.
func (srv *approvalService) ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.SellerProfile, error) {
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown approval status %q", status)
	}

	profiles, err := srv.sellerRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller profiles by status")
	}

	return profiles, nil
}

// applyDecision records the verdict on the profile with its audit fields.
func applyDecision(profile *entity.SellerProfile, adminID uuid.UUID, decision usecase.Decision, reason string) {
	now := timeNow()
	profile.DecidedBy = &adminID
	profile.DecidedAt = &now

	if decision == usecase.DecisionApprove {
		profile.ApprovalStatus = entity.ApprovalApproved
		profile.RejectionReason = ""

		return
	}

	profile.ApprovalStatus = entity.ApprovalRejected
	profile.RejectionReason = reason
}
