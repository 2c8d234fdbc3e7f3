package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// transitionStatusRequest is the body for a delivery status change.
// Reason is required only when cancelling.
type transitionStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

// updatePaymentRequest is the body for a settlement status change.
type updatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// CreateOrder handles checkout: the authenticated customer places an order.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var input *usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), caller.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// GetOrder fetches a single order visible to the caller.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Order ID must be a UUID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), caller, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListOrders returns the authenticated buyer's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	orders, err := h.uc.ListBuyerOrders(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// TransitionStatus moves the order's delivery status, including cancellation.
func (h *OrderHandler) TransitionStatus(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Order ID must be a UUID")
	}

	var req *transitionStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	order, err := h.uc.TransitionStatus(c.Request().Context(), caller, orderID, entity.OrderStatus(req.Status), req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// UpdatePaymentStatus moves the order's settlement status.
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Order ID must be a UUID")
	}

	var req *updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment status input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	order, err := h.uc.UpdatePaymentStatus(c.Request().Context(), caller, orderID, entity.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Payment status updated")
}
