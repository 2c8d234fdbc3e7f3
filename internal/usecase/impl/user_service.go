// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// RegisterCustomer creates a new customer account.
func (srv *userService) RegisterCustomer(ctx context.Context, input *usecase.RegisterCustomerInput) (*usecase.RegisterOutput, error) {
	user := &entity.User{
		ID:    uuid.New(),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Name:  strings.TrimSpace(input.Name),
		Role:  entity.RoleCustomer,
	}

	return srv.register(ctx, user, input.Password)
}

// RegisterSeller creates a new seller account. The seller profile always
// starts pending: nothing can be sold before an admin approves it.
func (srv *userService) RegisterSeller(ctx context.Context, input *usecase.RegisterSellerInput) (*usecase.RegisterOutput, error) {
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "business name is required")
	}

	userID := uuid.New()
	user := &entity.User{
		ID:    userID,
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Name:  strings.TrimSpace(input.Name),
		Role:  entity.RoleSeller,
		SellerProfile: &entity.SellerProfile{
			UserID:         userID,
			BusinessName:   strings.TrimSpace(input.BusinessName),
			ApprovalStatus: entity.ApprovalPending,
		},
	}

	return srv.register(ctx, user, input.Password)
}

// Login verifies credentials and issues an access/refresh token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password so the response does not leak
			// which emails are registered.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.logger.Debug("User logged in", slog.String("userID", user.ID.String()), slog.String("role", user.Role.String()))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// register hashes the password and persists the account inside a transaction.
func (srv *userService) register(ctx context.Context, user *entity.User, password string) (*usecase.RegisterOutput, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}
	user.PasswordHash = hash

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, user.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email taken")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email taken")
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.logger.Info("User registered",
		slog.String("userID", user.ID.String()),
		slog.String("role", user.Role.String()),
	)

	return &usecase.RegisterOutput{User: user}, nil
}
