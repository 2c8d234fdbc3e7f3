package usecase

import (
	"context"

	"market/internal/domain/service"
)

// SellerStats is the seller dashboard payload, recomputed from order history
// on every read. Revenue figures are in cents.
type SellerStats struct {
	TotalRevenue     int64   `json:"total_revenue"`
	RecentRevenue    int64   `json:"recent_revenue"`
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	ProcessingOrders int64   `json:"processing_orders"`
	CompletedOrders  int64   `json:"completed_orders"`
	CompletionRate   float64 `json:"completion_rate"`
	LowStockCount    int64   `json:"low_stock_count"`
}

// PlatformStats is the admin dashboard payload: simple counts by role and
// approval status.
type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalCustomers  int64 `json:"total_customers"`
	TotalSellers    int64 `json:"total_sellers"`
	TotalAdmins     int64 `json:"total_admins"`
	PendingSellers  int64 `json:"pending_sellers"`
	ApprovedSellers int64 `json:"approved_sellers"`
	RejectedSellers int64 `json:"rejected_sellers"`
}

// StatsUsecase provides read-only derived statistics. Figures are always
// aggregation queries over the order and seller tables, never separately
// maintained running totals, so they cannot drift after crashes or partial writes.
type StatsUsecase interface {
	// SellerStats computes the dashboard figures for the calling seller.
	// Stats are never computed for a non-approved seller.
	SellerStats(ctx context.Context, caller service.Caller) (*SellerStats, error)

	// PlatformStats computes platform-wide counts for admins.
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}
