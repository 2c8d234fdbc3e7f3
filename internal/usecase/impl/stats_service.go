package impl

import (
	"context"
	"log/slog"
	"time"

	"market/config"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// recentRevenueWindow is the lookback window for the dashboard's recent
// revenue figure.
const recentRevenueWindow = 30 * 24 * time.Hour

// statsService implements the StatsUsecase interface. Every figure is an
// aggregation query over the order/seller/user tables; nothing is ever kept
// as a separately maintained running total.
type statsService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	sellerRepo        repository.SellerRepository
	userRepo          repository.UserRepository
	accessCtrl        service.AccessControl
	lowStockThreshold int
	logger            *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	SellerRepo  repository.SellerRepository
	UserRepo    repository.UserRepository
	AccessCtrl  service.AccessControl
	Config      *config.Config
	Logger      *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	lowStockThreshold := defaultLowStockThreshold
	if params.Config != nil && params.Config.Order != nil && params.Config.Order.LowStockThreshold > 0 {
		lowStockThreshold = params.Config.Order.LowStockThreshold
	}

	return &statsService{
		orderRepo:         params.OrderRepo,
		productRepo:       params.ProductRepo,
		sellerRepo:        params.SellerRepo,
		userRepo:          params.UserRepo,
		accessCtrl:        params.AccessCtrl,
		lowStockThreshold: lowStockThreshold,
		logger:            params.Logger,
	}
}

// SellerStats computes the dashboard figures for the calling seller. The
// approval gate applies first: stats are never computed, let alone returned,
// for a non-approved seller.
func (srv *statsService) SellerStats(ctx context.Context, caller service.Caller) (*usecase.SellerStats, error) {
	if caller.Role != entity.RoleSeller {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "dashboard is seller-only")
	}
	if err := srv.accessCtrl.Authorize(ctx, caller, caller.ID, true); err != nil {
		return nil, err
	}

	counts, err := srv.orderRepo.CountByStatusForSeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count seller orders")
	}

	totalRevenue, err := srv.orderRepo.RevenueForSeller(ctx, caller.ID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute total revenue")
	}

	since := timeNow().Add(-recentRevenueWindow)
	recentRevenue, err := srv.orderRepo.RevenueForSeller(ctx, caller.ID, &since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute recent revenue")
	}

	lowStockCount, err := srv.productRepo.CountLowStockBySeller(ctx, caller.ID, srv.lowStockThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count low stock products")
	}

	var totalOrders int64
	for _, n := range counts {
		totalOrders += n
	}
	completedOrders := counts[entity.OrderDelivered]

	// Guard the zero-order case so the rate is 0%, never a division by zero.
	var completionRate float64
	if totalOrders > 0 {
		completionRate = float64(completedOrders) / float64(totalOrders)
	}

	return &usecase.SellerStats{
		TotalRevenue:     totalRevenue,
		RecentRevenue:    recentRevenue,
		TotalOrders:      totalOrders,
		PendingOrders:    counts[entity.OrderPending],
		ProcessingOrders: counts[entity.OrderProcessing],
		CompletedOrders:  completedOrders,
		CompletionRate:   completionRate,
		LowStockCount:    lowStockCount,
	}, nil
}

// PlatformStats computes platform-wide counts by role and approval status.
func (srv *statsService) PlatformStats(ctx context.Context) (*usecase.PlatformStats, error) {
	roleCounts, err := srv.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users by role")
	}

	approvalCounts, err := srv.sellerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sellers by approval status")
	}

	var totalUsers int64
	for _, n := range roleCounts {
		totalUsers += n
	}

	return &usecase.PlatformStats{
		TotalUsers:      totalUsers,
		TotalCustomers:  roleCounts[entity.RoleCustomer],
		TotalSellers:    roleCounts[entity.RoleSeller],
		TotalAdmins:     roleCounts[entity.RoleAdmin],
		PendingSellers:  approvalCounts[entity.ApprovalPending],
		ApprovedSellers: approvalCounts[entity.ApprovalApproved],
		RejectedSellers: approvalCounts[entity.ApprovalRejected],
	}, nil
}
