package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/response"
	domainerrors "market/internal/domain/errors"
	"market/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SellerHandler holds dependencies for seller-facing handlers: the approval
// gate, the order list and the dashboard.
type SellerHandler struct {
	approvalUC usecase.ApprovalUsecase
	orderUC    usecase.OrderUsecase
	statsUC    usecase.StatsUsecase
	logger     *slog.Logger
}

// NewSellerHandler is the constructor for SellerHandler, injected by Fx.
func NewSellerHandler(
	approvalUC usecase.ApprovalUsecase,
	orderUC usecase.OrderUsecase,
	statsUC usecase.StatsUsecase,
	logger *slog.Logger,
) *SellerHandler {
	return &SellerHandler{
		approvalUC: approvalUC,
		orderUC:    orderUC,
		statsUC:    statsUC,
		logger:     logger,
	}
}

// GetApprovalStatus returns the calling seller's current approval state.
func (h *SellerHandler) GetApprovalStatus(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	status, err := h.approvalUC.CheckApproval(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}

// Resubmit moves the seller's rejected application back to pending review.
func (h *SellerHandler) Resubmit(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	profile, err := h.approvalUC.Resubmit(c.Request().Context(), caller.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Application resubmitted")
}

// ListOrders returns orders containing the calling seller's line items.
func (h *SellerHandler) ListOrders(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	orders, err := h.orderUC.ListSellerOrders(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetStats returns the seller dashboard, recomputed from order history.
// A non-approved seller gets the approval-status payload with 403 instead of
// any figures.
func (h *SellerHandler) GetStats(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	ctx := c.Request().Context()
	stats, err := h.statsUC.SellerStats(ctx, caller)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSellerNotApproved) {
			status, checkErr := h.approvalUC.CheckApproval(ctx, caller.ID)
			if checkErr != nil {
				return errors.WithStack(checkErr)
			}

			return response.ErrorWithData(c, http.StatusForbidden,
				domainerrors.ErrSellerNotApproved.ErrorCode(),
				domainerrors.ErrSellerNotApproved.Message(),
				"approval status is "+status.Status.String(),
				status,
			)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}
