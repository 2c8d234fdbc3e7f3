package impl

import (
	"context"
	"testing"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	mockRepo "market/internal/mocks/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approvalServiceFixtures holds all test dependencies for approval service tests.
type approvalServiceFixtures struct {
	service    usecase.ApprovalUsecase
	txManager  *mockRepo.MockTransactionManager
	factory    *mockRepo.MockRepositoryFactory
	sellerRepo *mockRepo.MockSellerRepository
}

func createTestApprovalService(t *testing.T) approvalServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	sellerRepo := mockRepo.NewMockSellerRepository(t)

	service := NewApprovalService(ApprovalServiceParams{
		TxManager:  txManager,
		SellerRepo: sellerRepo,
		Logger:     newDiscardLogger(),
	})

	return approvalServiceFixtures{
		service:    service,
		txManager:  txManager,
		factory:    factory,
		sellerRepo: sellerRepo,
	}
}

func newTestProfile(status entity.ApprovalStatus) *entity.SellerProfile {
	return &entity.SellerProfile{
		UserID:         uuid.New(),
		BusinessName:   "Acme Goods",
		ApprovalStatus: status,
		CreatedAt:      time.Now(),
	}
}

func TestApprovalService_CheckApproval(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	profile := newTestProfile(entity.ApprovalRejected)
	profile.RejectionReason = "incomplete documents"

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)

	out, err := fx.service.CheckApproval(ctx, profile.UserID)
	require.NoError(t, err)
	assert.False(t, out.IsApproved)
	assert.Equal(t, entity.ApprovalRejected, out.Status)
	assert.Equal(t, "incomplete documents", out.Reason)
}

func TestApprovalService_CheckApproval_UnknownSeller(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	sellerID := uuid.New()

	fx.sellerRepo.EXPECT().FindByUserID(ctx, sellerID).Return(nil, repository.ErrSellerNotFound)

	out, err := fx.service.CheckApproval(ctx, sellerID)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotFound)
}

func TestApprovalService_Decide_Approve(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	adminID := uuid.New()
	profile := newTestProfile(entity.ApprovalPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)
	fx.sellerRepo.EXPECT().Update(ctx, profile).Return(nil)

	decided, err := fx.service.Decide(ctx, adminID, profile.UserID, usecase.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, decided.ApprovalStatus)
	assert.Empty(t, decided.RejectionReason)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, adminID, *decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)
}

func TestApprovalService_Decide_RejectRecordsReason(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	adminID := uuid.New()
	profile := newTestProfile(entity.ApprovalPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)
	fx.sellerRepo.EXPECT().Update(ctx, profile).Return(nil)

	decided, err := fx.service.Decide(ctx, adminID, profile.UserID, usecase.DecisionReject, "missing tax ID")
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, decided.ApprovalStatus)
	assert.Equal(t, "missing tax ID", decided.RejectionReason)
}

func TestApprovalService_Decide_RejectRequiresReason(t *testing.T) {
	fx := createTestApprovalService(t)

	decided, err := fx.service.Decide(context.Background(), uuid.New(), uuid.New(), usecase.DecisionReject, "   ")
	assert.Nil(t, decided)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestApprovalService_Decide_OnlyPendingProfiles(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	profile := newTestProfile(entity.ApprovalApproved)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)

	decided, err := fx.service.Decide(ctx, uuid.New(), profile.UserID, usecase.DecisionApprove, "")
	assert.Nil(t, decided)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestApprovalService_Demote_ApprovedSeller(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	adminID := uuid.New()
	profile := newTestProfile(entity.ApprovalApproved)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)
	fx.sellerRepo.EXPECT().Update(ctx, profile).Return(nil)

	demoted, err := fx.service.Demote(ctx, adminID, profile.UserID, "policy violation")
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, demoted.ApprovalStatus)
	assert.Equal(t, "policy violation", demoted.RejectionReason)
}

func TestApprovalService_Demote_OnlyApprovedSellers(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	profile := newTestProfile(entity.ApprovalPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)

	demoted, err := fx.service.Demote(ctx, uuid.New(), profile.UserID, "policy violation")
	assert.Nil(t, demoted)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestApprovalService_Resubmit_RejectedBackToPending(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	adminID := uuid.New()
	decidedAt := time.Now()
	profile := newTestProfile(entity.ApprovalRejected)
	profile.RejectionReason = "incomplete documents"
	profile.DecidedBy = &adminID
	profile.DecidedAt = &decidedAt

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)
	fx.sellerRepo.EXPECT().Update(ctx, profile).Return(nil)

	resubmitted, err := fx.service.Resubmit(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, resubmitted.ApprovalStatus)
	assert.Empty(t, resubmitted.RejectionReason)
	assert.Nil(t, resubmitted.DecidedBy)
	assert.Nil(t, resubmitted.DecidedAt)
}

func TestApprovalService_Resubmit_OnlyRejectedProfiles(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	profile := newTestProfile(entity.ApprovalPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().SellerRepo().Return(fx.sellerRepo)

	fx.sellerRepo.EXPECT().FindByUserID(ctx, profile.UserID).Return(profile, nil)

	resubmitted, err := fx.service.Resubmit(ctx, profile.UserID)
	assert.Nil(t, resubmitted)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestApprovalService_ListByStatus(t *testing.T) {
	fx := createTestApprovalService(t)

	ctx := context.Background()
	expected := []*entity.SellerProfile{newTestProfile(entity.ApprovalPending)}

	fx.sellerRepo.EXPECT().ListByStatus(ctx, entity.ApprovalPending).Return(expected, nil)

	profiles, err := fx.service.ListByStatus(ctx, entity.ApprovalPending)
	require.NoError(t, err)
	assert.Equal(t, expected, profiles)
}

func TestApprovalService_ListByStatus_UnknownStatus(t *testing.T) {
	fx := createTestApprovalService(t)

	profiles, err := fx.service.ListByStatus(context.Background(), entity.ApprovalStatus("bogus"))
	assert.Nil(t, profiles)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
