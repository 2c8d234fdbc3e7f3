package access

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	mockRepo "market/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestAccessControl(t *testing.T) (service.AccessControl, *mockRepo.MockSellerRepository) {
	sellerRepo := mockRepo.NewMockSellerRepository(t)
	ac := NewAccessControl(AccessControlParams{
		SellerRepo: sellerRepo,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return ac, sellerRepo
}

func TestAccessControl_AdminAlwaysPasses(t *testing.T) {
	ac, _ := createTestAccessControl(t)

	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	err := ac.Authorize(context.Background(), caller, uuid.New(), true)
	assert.NoError(t, err)
}

func TestAccessControl_CustomerOwnResourceOnly(t *testing.T) {
	ac, _ := createTestAccessControl(t)

	ctx := context.Background()
	customerID := uuid.New()
	caller := service.Caller{ID: customerID, Role: entity.RoleCustomer}

	assert.NoError(t, ac.Authorize(ctx, caller, customerID, false))

	err := ac.Authorize(ctx, caller, uuid.New(), false)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccessControl_SellerMustOwnResource(t *testing.T) {
	ac, _ := createTestAccessControl(t)

	caller := service.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	err := ac.Authorize(context.Background(), caller, uuid.New(), true)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccessControl_ApprovedSellerPassesGate(t *testing.T) {
	ac, sellerRepo := createTestAccessControl(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}

	sellerRepo.EXPECT().
		FindByUserID(ctx, sellerID).
		Return(&entity.SellerProfile{UserID: sellerID, ApprovalStatus: entity.ApprovalApproved}, nil)

	assert.NoError(t, ac.Authorize(ctx, caller, sellerID, true))
}

func TestAccessControl_PendingSellerBlockedByGate(t *testing.T) {
	ac, sellerRepo := createTestAccessControl(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}

	sellerRepo.EXPECT().
		FindByUserID(ctx, sellerID).
		Return(&entity.SellerProfile{UserID: sellerID, ApprovalStatus: entity.ApprovalPending}, nil)

	err := ac.Authorize(ctx, caller, sellerID, true)
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotApproved)
}

func TestAccessControl_SellerSkipsGateWhenNotRequired(t *testing.T) {
	ac, _ := createTestAccessControl(t)

	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}

	// No repository lookup happens when the approval gate does not apply.
	assert.NoError(t, ac.Authorize(context.Background(), caller, sellerID, false))
}

func TestAccessControl_SellerProfileMissing(t *testing.T) {
	ac, sellerRepo := createTestAccessControl(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}

	sellerRepo.EXPECT().
		FindByUserID(ctx, sellerID).
		Return(nil, repository.ErrSellerNotFound)

	err := ac.Authorize(ctx, caller, sellerID, true)
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestAccessControl_UnknownRoleForbidden(t *testing.T) {
	ac, _ := createTestAccessControl(t)

	caller := service.Caller{ID: uuid.New(), Role: entity.Role("bogus")}
	err := ac.Authorize(context.Background(), caller, caller.ID, false)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
