// Package usecase defines the application's use case interfaces and their
// input/output DTOs. The delivery layer depends on these interfaces only.
package usecase

import (
	"context"

	"market/internal/domain/entity"
)

// RegisterCustomerInput carries the fields needed to register a customer account.
type RegisterCustomerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterSellerInput carries the fields needed to register a seller account.
// The created seller profile always starts in the pending approval state.
type RegisterSellerInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"business_name" validate:"required"`
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	User *entity.User `json:"user"`
}

// LoginInput carries the credentials for an email/password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the issued token pair.
type LoginOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserUsecase defines the account registration and login use cases.
type UserUsecase interface {
	// RegisterCustomer creates a new customer account.
	RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*RegisterOutput, error)

	// RegisterSeller creates a new seller account with a pending seller profile.
	RegisterSeller(ctx context.Context, input *RegisterSellerInput) (*RegisterOutput, error)

	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
