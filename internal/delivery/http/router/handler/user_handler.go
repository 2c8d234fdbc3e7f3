package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/response"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account registration and login handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// registeredUser is the outward shape of a freshly created account.
// The password hash never leaves the server.
type registeredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// RegisterCustomer handles the customer registration request.
func (h *UserHandler) RegisterCustomer(c echo.Context) error {
	var input *usecase.RegisterCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.RegisterCustomer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toRegisteredUser(output), "Customer registered successfully")
}

// RegisterSeller handles the seller registration request. The new seller
// profile starts pending admin review.
func (h *UserHandler) RegisterSeller(c echo.Context) error {
	var input *usecase.RegisterSellerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.RegisterSeller(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toRegisteredUser(output), "Seller registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

func toRegisteredUser(output *usecase.RegisterOutput) *registeredUser {
	if output == nil || output.User == nil {
		return nil
	}

	return &registeredUser{
		ID:    output.User.ID.String(),
		Email: output.User.Email,
		Name:  output.User.Name,
		Role:  output.User.Role.String(),
	}
}
