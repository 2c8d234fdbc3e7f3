package impl

import (
	"context"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	mockRepo "market/internal/mocks/repository"
	mockService "market/internal/mocks/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      service,
		txManager:    txManager,
		factory:      factory,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_RegisterCustomer_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	out, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.Equal(t, "hashed", out.User.PasswordHash)
	assert.Nil(t, out.User.SellerProfile)
}

func TestUserService_RegisterSeller_StartsPending(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "bob@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	out, err := fx.service.RegisterSeller(ctx, &usecase.RegisterSellerInput{
		Name:         "Bob",
		Email:        "bob@example.com",
		Password:     "s3cret-pass",
		BusinessName: "Bob's Goods",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, out.User.Role)
	require.NotNil(t, out.User.SellerProfile)
	assert.Equal(t, entity.ApprovalPending, out.User.SellerProfile.ApprovalStatus)
	assert.Equal(t, "Bob's Goods", out.User.SellerProfile.BusinessName)
	assert.Equal(t, out.User.ID, out.User.SellerProfile.UserID)
}

func TestUserService_RegisterSeller_RequiresBusinessName(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.RegisterSeller(context.Background(), &usecase.RegisterSellerInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "s3cret-pass",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	existing := &entity.User{ID: uuid.New(), Email: "alice@example.com", Role: entity.RoleCustomer}

	fx.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(existing, nil)

	out, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestUserService_Register_DuplicateEmailRace(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	// Another registration commits between the existence check and the
	// insert; the unique constraint surfaces as the same conflict error.
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateEmail)

	out, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterCustomerInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Role:         entity.RoleCustomer,
		PasswordHash: "hashed",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("s3cret-pass", "hashed").Return(true)
	fx.tokenService.EXPECT().
		GenerateTokens(user.ID, []string{"customer"}).
		Return("access-token", "refresh-token", nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
