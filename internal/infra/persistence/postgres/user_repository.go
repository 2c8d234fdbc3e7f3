// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID, preloading the seller profile when present.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading the seller profile.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("SellerProfile").
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity, including the seller profile for seller
// registrations. GORM's Create with associations inserts into users and
// seller_profiles in one statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid foreign key reference")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.SellerProfile != nil && userM.SellerProfile != nil {
		user.SellerProfile.UserID = userM.SellerProfile.UserID
		user.SellerProfile.CreatedAt = userM.SellerProfile.CreatedAt
		user.SellerProfile.UpdatedAt = userM.SellerProfile.UpdatedAt
	}

	return nil
}

// CountByRole returns the number of users per role, excluding soft-deleted accounts.
func (repo *userRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	type roleCount struct {
		Role  string
		Count int64
	}

	var rows []roleCount
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("role, count(*) as count").
		Where("deleted_at IS NULL").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users by role")
	}

	counts := make(map[entity.Role]int64, len(rows))
	for _, row := range rows {
		counts[entity.Role(row.Role)] = row.Count
	}

	return counts, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		Name:          data.Name,
		PasswordHash:  data.PasswordHash,
		Role:          entity.Role(data.Role),
		SellerProfile: toSellerProfileDomain(data.SellerProfile),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Email:         data.Email,
		Name:          data.Name,
		PasswordHash:  data.PasswordHash,
		Role:          string(data.Role),
		SellerProfile: fromSellerProfileDomain(data.SellerProfile),
	}
}

// toSellerProfileDomain converts a GORM SellerProfileModel to a domain SellerProfile entity.
func toSellerProfileDomain(data *model.SellerProfileModel) *entity.SellerProfile {
	if data == nil {
		return nil
	}

	return &entity.SellerProfile{
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		ApprovalStatus:  entity.ApprovalStatus(data.ApprovalStatus),
		RejectionReason: data.RejectionReason,
		DecidedBy:       data.DecidedBy,
		DecidedAt:       data.DecidedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromSellerProfileDomain converts a domain SellerProfile entity to a GORM SellerProfileModel.
func fromSellerProfileDomain(data *entity.SellerProfile) *model.SellerProfileModel {
	if data == nil {
		return nil
	}

	return &model.SellerProfileModel{
		UserID:          data.UserID,
		BusinessName:    data.BusinessName,
		ApprovalStatus:  string(data.ApprovalStatus),
		RejectionReason: data.RejectionReason,
		DecidedBy:       data.DecidedBy,
		DecidedAt:       data.DecidedAt,
	}
}
