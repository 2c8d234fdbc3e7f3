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

// AdminHandler holds dependencies for the admin review queue and dashboard.
type AdminHandler struct {
	approvalUC usecase.ApprovalUsecase
	statsUC    usecase.StatsUsecase
	logger     *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(approvalUC usecase.ApprovalUsecase, statsUC usecase.StatsUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		approvalUC: approvalUC,
		statsUC:    statsUC,
		logger:     logger,
	}
}

// decisionRequest is the body for an admin verdict on a pending application.
type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason"`
}

// demoteRequest is the body for revoking an approved seller.
type demoteRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ListSellers returns the review queue filtered by approval status.
// The status query parameter defaults to pending.
func (h *AdminHandler) ListSellers(c echo.Context) error {
	status := entity.ApprovalStatus(c.QueryParam("status"))
	if status == "" {
		status = entity.ApprovalPending
	}
	if !status.IsValid() {
		return response.BadRequest(c, "INVALID_STATUS", "Unknown approval status")
	}

	profiles, err := h.approvalUC.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "")
}

// Decide applies an approve or reject verdict to a pending seller application.
func (h *AdminHandler) Decide(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_SELLER_ID", "Seller ID must be a UUID")
	}

	var req *decisionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid decision input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	profile, err := h.approvalUC.Decide(c.Request().Context(), caller.ID, sellerID, usecase.Decision(req.Decision), req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Decision recorded")
}

// Demote revokes an approved seller's selling capability.
func (h *AdminHandler) Demote(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_SELLER_ID", "Seller ID must be a UUID")
	}

	var req *demoteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid demote input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	profile, err := h.approvalUC.Demote(c.Request().Context(), caller.ID, sellerID, req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Seller demoted")
}

// GetStats returns platform-wide counts for the admin dashboard.
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.statsUC.PlatformStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}
