package impl

import (
	"context"
	"log/slog"
	"strings"

	"market/config"
	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/constants"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultShippingCharge    = 500 // cents
	defaultTaxRatePercent    = 10
	defaultLowStockThreshold = 5
)

// orderService implements the OrderUsecase interface. All mutations run
// inside the transaction manager; per-order serialization relies on the
// order's optimistic version column and per-product serialization on
// conditional stock updates.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	accessCtrl     service.AccessControl
	publisher      service.EventPublisher
	shippingCharge int64
	taxRatePercent int64
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	AccessCtrl service.AccessControl
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	shippingCharge := int64(defaultShippingCharge)
	taxRatePercent := int64(defaultTaxRatePercent)
	if params.Config != nil && params.Config.Order != nil {
		if params.Config.Order.ShippingCharge > 0 {
			shippingCharge = params.Config.Order.ShippingCharge
		}
		if params.Config.Order.TaxRatePercent > 0 {
			taxRatePercent = params.Config.Order.TaxRatePercent
		}
	}

	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		accessCtrl:     params.AccessCtrl,
		publisher:      params.Publisher,
		shippingCharge: shippingCharge,
		taxRatePercent: taxRatePercent,
		logger:         params.Logger,
	}
}

// CreateOrder atomically creates an order from a non-empty cart. Stock is
// reserved for every line item inside a single transaction: if any line
// fails, the rollback leaves stock untouched.
func (srv *orderService) CreateOrder(ctx context.Context, buyerID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if input == nil || len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyCart, "order needs at least one item")
	}
	if err := validateShippingAddress(&input.ShippingAddress); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "payment method is required")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "item quantity must be at least 1")
		}
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		items := make([]entity.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrapf(domainerrors.ErrProductNotFound, "product %s", line.ProductID)
				}

				return errors.Wrap(err, "failed to find product")
			}
			if !product.IsActive {
				return errors.Wrapf(domainerrors.ErrProductInactive, "product %s", line.ProductID)
			}

			// Conditional decrement enforces the stock floor atomically;
			// a failed line rolls back every earlier reservation.
			if err := productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return errors.Wrapf(domainerrors.ErrInsufficientStock, "product %s", line.ProductID)
				}

				return errors.Wrap(err, "failed to reserve stock")
			}

			// Unit price is captured here and never recomputed from the
			// live product price.
			items = append(items, entity.OrderItem{
				ID:          uuid.New(),
				ProductID:   product.ID,
				SellerID:    product.OwnerID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.EffectivePrice(),
			})
		}

		order := srv.buildOrder(buyerID, items, input)
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		created = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.logger.Info("Order created",
		slog.String("orderID", created.ID.String()),
		slog.String("buyerID", buyerID.String()),
		slog.Int64("finalAmount", created.FinalAmount),
	)
	srv.publishEvent(ctx, constants.EventOrderCreated, created, "")

	return created, nil
}

// TransitionStatus moves the order's delivery status, enforcing the state
// machine and the authorization gate. Cancellation releases stock exactly
// once: the optimistic version check fails any concurrent or repeated attempt
// with Conflict before a second release can happen.
func (srv *orderService) TransitionStatus(ctx context.Context, caller service.Caller, orderID uuid.UUID, newStatus entity.OrderStatus, reason string) (*entity.Order, error) {
	if !newStatus.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown order status %q", newStatus)
	}
	if newStatus == entity.OrderCancelled && strings.TrimSpace(reason) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cancellation requires a reason")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		productRepo := repoFactory.ProductRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "unknown order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if err := srv.authorizeSellerMutation(ctx, caller, order); err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(newStatus) {
			// A retried request targeting the state the order is already in
			// (e.g. a double-clicked cancel) reports Conflict, not a silent
			// success and never a second stock release.
			if order.Status == newStatus {
				return errors.Wrapf(domainerrors.ErrConflict, "order is already %s", newStatus)
			}

			return errors.Wrapf(domainerrors.ErrInvalidTransition, "%s -> %s", order.Status, newStatus)
		}

		if newStatus == entity.OrderCancelled {
			// Release every reservation exactly once. The version check on
			// Update below guarantees only one cancellation commits.
			for _, item := range order.Items {
				if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return errors.Wrap(err, "failed to release stock")
				}
			}
			now := timeNow()
			order.CancelledReason = strings.TrimSpace(reason)
			order.CancelledAt = &now
		}

		order.Status = newStatus
		if err := orderRepo.Update(ctx, order); err != nil {
			if errors.Is(err, repository.ErrStaleOrder) {
				return errors.Wrap(domainerrors.ErrConflict, "order changed concurrently")
			}

			return errors.Wrap(err, "failed to update order")
		}
		updated = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute order status transition")
	}

	srv.logger.Info("Order status changed",
		slog.String("orderID", orderID.String()),
		slog.String("newStatus", newStatus.String()),
		slog.String("callerID", caller.ID.String()),
	)

	eventType := constants.EventOrderStatusChanged
	if newStatus == entity.OrderCancelled {
		eventType = constants.EventOrderCancelled
	}
	srv.publishEvent(ctx, eventType, updated, updated.CancelledReason)

	return updated, nil
}

// UpdatePaymentStatus moves the order's settlement status. Cash-on-delivery
// settles after delivery, so "paid" is only reachable once the order has
// been delivered.
func (srv *orderService) UpdatePaymentStatus(ctx context.Context, caller service.Caller, orderID uuid.UUID, newStatus entity.PaymentStatus) (*entity.Order, error) {
	if !newStatus.IsValid() || newStatus == entity.PaymentPending {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "invalid payment status %q", newStatus)
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "unknown order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if err := srv.authorizeSellerMutation(ctx, caller, order); err != nil {
			return err
		}

		if order.Status == entity.OrderCancelled {
			return errors.Wrap(domainerrors.ErrInvalidTransition, "cancelled orders accept no payment updates")
		}
		if !order.PaymentStatus.CanTransitionTo(newStatus) {
			return errors.Wrapf(domainerrors.ErrInvalidTransition, "payment %s -> %s", order.PaymentStatus, newStatus)
		}
		if newStatus == entity.PaymentPaid && order.Status != entity.OrderDelivered {
			return errors.Wrap(domainerrors.ErrInvalidTransition, "order must be delivered before it can be paid")
		}

		if newStatus == entity.PaymentPaid {
			now := timeNow()
			order.PaidAt = &now
		}
		order.PaymentStatus = newStatus

		if err := orderRepo.Update(ctx, order); err != nil {
			if errors.Is(err, repository.ErrStaleOrder) {
				return errors.Wrap(domainerrors.ErrConflict, "order changed concurrently")
			}

			return errors.Wrap(err, "failed to update order")
		}
		updated = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute payment status update")
	}

	srv.logger.Info("Order payment status changed",
		slog.String("orderID", orderID.String()),
		slog.String("paymentStatus", newStatus.String()),
		slog.String("callerID", caller.ID.String()),
	)

	return updated, nil
}

// GetOrder fetches a single order. Customers see only their own orders,
// sellers only orders carrying their items, admins everything.
func (srv *orderService) GetOrder(ctx context.Context, caller service.Caller, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "unknown order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	switch caller.Role {
	case entity.RoleAdmin:
		return order, nil
	case entity.RoleCustomer:
		if err := srv.accessCtrl.Authorize(ctx, caller, order.BuyerID, false); err != nil {
			return nil, err
		}

		return order, nil
	case entity.RoleSeller:
		if !order.ContainsSeller(caller.ID) {
			return nil, errors.Wrap(domainerrors.ErrForbidden, "order carries no items from this seller")
		}
		if err := srv.accessCtrl.Authorize(ctx, caller, caller.ID, true); err != nil {
			return nil, err
		}

		return order, nil
	default:
		return nil, errors.Wrapf(domainerrors.ErrForbidden, "unknown role %q", caller.Role)
	}
}

// ListBuyerOrders returns the buyer's own orders, newest first.
func (srv *orderService) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list buyer orders")
	}

	return orders, nil
}

// ListSellerOrders returns orders carrying the calling seller's items. The
// approval gate applies like on every other seller operation.
func (srv *orderService) ListSellerOrders(ctx context.Context, caller service.Caller) ([]*entity.Order, error) {
	if caller.Role != entity.RoleSeller {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only sellers have incoming orders")
	}
	if err := srv.accessCtrl.Authorize(ctx, caller, caller.ID, true); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListBySeller(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	return orders, nil
}

// authorizeSellerMutation guards order mutations: only an admin, or the
// approved seller owning every line item, may change an order's state.
func (srv *orderService) authorizeSellerMutation(ctx context.Context, caller service.Caller, order *entity.Order) error {
	// Orders spanning several sellers have no sole owner: only admins may
	// mutate them, and Authorize rejects any non-admin against the nil owner.
	ownerID, _ := order.SoleSeller()

	return srv.accessCtrl.Authorize(ctx, caller, ownerID, true)
}

// buildOrder assembles the order aggregate with its derived amounts.
func (srv *orderService) buildOrder(buyerID uuid.UUID, items []entity.OrderItem, input *usecase.CreateOrderInput) *entity.Order {
	var totalAmount int64
	for _, item := range items {
		totalAmount += item.Subtotal()
	}

	taxAmount := totalAmount * srv.taxRatePercent / 100
	var discountAmount int64
	finalAmount := totalAmount + srv.shippingCharge + taxAmount - discountAmount

	orderID := uuid.New()
	for i := range items {
		items[i].OrderID = orderID
	}

	return &entity.Order{
		ID:      orderID,
		BuyerID: buyerID,
		Items:   items,
		ShippingAddress: entity.ShippingAddress{
			Street:  strings.TrimSpace(input.ShippingAddress.Street),
			City:    strings.TrimSpace(input.ShippingAddress.City),
			Country: strings.TrimSpace(input.ShippingAddress.Country),
			ZipCode: strings.TrimSpace(input.ShippingAddress.ZipCode),
			Phone:   strings.TrimSpace(input.ShippingAddress.Phone),
		},
		Status:         entity.OrderPending,
		PaymentStatus:  entity.PaymentPending,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		TotalAmount:    totalAmount,
		ShippingCharge: srv.shippingCharge,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		CreatedAt:      timeNow(),
	}
}

// publishEvent emits an order lifecycle event best-effort: a publish failure
// is logged and never fails the request that produced it.
func (srv *orderService) publishEvent(ctx context.Context, eventType string, order *entity.Order, reason string) {
	if srv.publisher == nil {
		return
	}

	sellerIDs := make([]string, 0, len(order.Items))
	for _, id := range order.SellerIDs() {
		sellerIDs = append(sellerIDs, id.String())
	}

	event := &service.OrderEvent{
		EventType:   eventType,
		OrderID:     order.ID.String(),
		BuyerID:     order.BuyerID.String(),
		SellerIDs:   sellerIDs,
		Status:      order.Status.String(),
		FinalAmount: order.FinalAmount,
		Reason:      reason,
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt:  timeNow(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.String("orderID", order.ID.String()),
			slog.Any("error", err),
		)
	}
}

// validateShippingAddress checks the required destination fields.
func validateShippingAddress(addr *usecase.ShippingAddressInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"street", addr.Street},
		{"city", addr.City},
		{"country", addr.Country},
		{"zip_code", addr.ZipCode},
		{"phone", addr.Phone},
	}

	missing := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(domainerrors.ErrValidationFailed, "missing shipping address fields: %s", strings.Join(missing, ", "))
	}

	return nil
}
