package postgres

import (
	"context"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order entity with its line items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid buyer or product reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Reflect generated identifiers and timestamps back onto the entity
	order.ID = orderM.ID
	order.Version = orderM.Version
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
	}

	return nil
}

// FindByID retrieves a single order with its line items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// Update persists the order's mutable fields guarded by the version the entity
// was read at. A zero rows-affected result means another writer got there first.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"status":           string(order.Status),
			"payment_status":   string(order.PaymentStatus),
			"cancelled_reason": order.CancelledReason,
			"cancelled_at":     order.CancelledAt,
			"paid_at":          order.PaidAt,
			"version":          gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		// Distinguish a stale version from a missing order.
		var exists int64
		if err := repo.db.WithContext(ctx).
			Model(&model.OrderModel{}).
			Where("id = ?", order.ID).
			Count(&exists).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
		}
		if exists == 0 {
			return repository.ErrOrderNotFound
		}

		return repository.ErrStaleOrder
	}

	order.Version++

	return nil
}

// ListByBuyer retrieves the buyer's orders, newest first.
func (repo *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by buyer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// ListBySeller retrieves orders containing at least one of the seller's line items, newest first.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("DISTINCT order_id").
			Where("seller_id = ?", sellerID)).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by seller")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// CountByStatusForSeller returns the number of the seller's orders per delivery status.
func (repo *orderRepository) CountByStatusForSeller(ctx context.Context, sellerID uuid.UUID) (map[entity.OrderStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, count(*) as count").
		Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("DISTINCT order_id").
			Where("seller_id = ?", sellerID)).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// RevenueForSeller sums the seller's line-item subtotals, in cents, over orders
// that are both delivered and paid. When since is non-nil only orders paid at
// or after that instant are counted.
func (repo *orderRepository) RevenueForSeller(ctx context.Context, sellerID uuid.UUID, since *time.Time) (int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("COALESCE(SUM(order_items.unit_price * order_items.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.seller_id = ?", sellerID).
		Where("orders.status = ? AND orders.payment_status = ?",
			string(entity.OrderDelivered), string(entity.PaymentPaid))

	if since != nil {
		query = query.Where("orders.paid_at >= ?", *since)
	}

	var revenue int64
	if err := query.Scan(&revenue).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum seller revenue")
	}

	return revenue, nil
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:          itemM.ID,
			OrderID:     itemM.OrderID,
			ProductID:   itemM.ProductID,
			SellerID:    itemM.SellerID,
			ProductName: itemM.ProductName,
			Quantity:    itemM.Quantity,
			UnitPrice:   itemM.UnitPrice,
		})
	}

	return &entity.Order{
		ID:      data.ID,
		BuyerID: data.BuyerID,
		Items:   items,
		ShippingAddress: entity.ShippingAddress{
			Street:  data.ShippingStreet,
			City:    data.ShippingCity,
			Country: data.ShippingCountry,
			ZipCode: data.ShippingZipCode,
			Phone:   data.ShippingPhone,
		},
		Status:          entity.OrderStatus(data.Status),
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentMethod:   data.PaymentMethod,
		TotalAmount:     data.TotalAmount,
		ShippingCharge:  data.ShippingCharge,
		TaxAmount:       data.TaxAmount,
		DiscountAmount:  data.DiscountAmount,
		FinalAmount:     data.FinalAmount,
		CancelledReason: data.CancelledReason,
		CancelledAt:     data.CancelledAt,
		PaidAt:          data.PaidAt,
		Version:         data.Version,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			SellerID:    item.SellerID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		BuyerID:         data.BuyerID,
		Status:          string(data.Status),
		PaymentStatus:   string(data.PaymentStatus),
		PaymentMethod:   data.PaymentMethod,
		ShippingStreet:  data.ShippingAddress.Street,
		ShippingCity:    data.ShippingAddress.City,
		ShippingCountry: data.ShippingAddress.Country,
		ShippingZipCode: data.ShippingAddress.ZipCode,
		ShippingPhone:   data.ShippingAddress.Phone,
		TotalAmount:     data.TotalAmount,
		ShippingCharge:  data.ShippingCharge,
		TaxAmount:       data.TaxAmount,
		DiscountAmount:  data.DiscountAmount,
		FinalAmount:     data.FinalAmount,
		CancelledReason: data.CancelledReason,
		CancelledAt:     data.CancelledAt,
		PaidAt:          data.PaidAt,
		Version:         data.Version,
		Items:           items,
	}
}
