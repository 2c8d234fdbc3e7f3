package postgres

import (
	"context"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sellerRepository implements the repository.SellerRepository interface.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{
		db: db,
	}
}

// FindByUserID retrieves the seller profile belonging to the given user.
func (repo *sellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	var profileM model.SellerProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller profile by user id")
	}

	return toSellerProfileDomain(&profileM), nil
}

// Update persists the current approval state of the profile.
func (repo *sellerRepository) Update(ctx context.Context, profile *entity.SellerProfile) error {
	profileM := fromSellerProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.SellerProfileModel{}).
		Where("user_id = ?", profileM.UserID).
		Updates(map[string]any{
			"approval_status":  profileM.ApprovalStatus,
			"rejection_reason": profileM.RejectionReason,
			"decided_by":       profileM.DecidedBy,
			"decided_at":       profileM.DecidedAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update seller profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSellerNotFound
	}

	return nil
}

// ListByStatus retrieves seller profiles filtered by approval status, newest application first.
func (repo *sellerRepository) ListByStatus(ctx context.Context, status entity.ApprovalStatus) ([]*entity.SellerProfile, error) {
	var profileModels []*model.SellerProfileModel

	if err := repo.db.WithContext(ctx).
		Where("approval_status = ?", string(status)).
		Order("created_at DESC").
		Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list seller profiles by status")
	}

	profiles := make([]*entity.SellerProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toSellerProfileDomain(profileM))
	}

	return profiles, nil
}

// CountByStatus returns the number of seller profiles per approval status.
func (repo *sellerRepository) CountByStatus(ctx context.Context) (map[entity.ApprovalStatus]int64, error) {
	type statusCount struct {
		ApprovalStatus string
		Count          int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.SellerProfileModel{}).
		Select("approval_status, count(*) as count").
		Group("approval_status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count seller profiles by status")
	}

	counts := make(map[entity.ApprovalStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.ApprovalStatus(row.ApprovalStatus)] = row.Count
	}

	return counts, nil
}
