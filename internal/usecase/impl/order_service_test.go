package impl

import (
	"context"
	"testing"
	"time"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	mockRepo "market/internal/mocks/repository"
	mockService "market/internal/mocks/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service     usecase.OrderUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	orderRepo   *mockRepo.MockOrderRepository
	productRepo *mockRepo.MockProductRepository
	accessCtrl  *mockService.MockAccessControl
	publisher   *mockService.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	accessCtrl := mockService.NewMockAccessControl(t)
	publisher := mockService.NewMockEventPublisher(t)

	service := NewOrderService(OrderServiceParams{
		TxManager:  txManager,
		OrderRepo:  orderRepo,
		AccessCtrl: accessCtrl,
		Publisher:  publisher,
		Config:     newTestOrderConfig(),
		Logger:     newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:     service,
		txManager:   txManager,
		factory:     factory,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		accessCtrl:  accessCtrl,
		publisher:   publisher,
	}
}

func validShippingAddress() usecase.ShippingAddressInput {
	return usecase.ShippingAddressInput{
		Street:  "1 Main St",
		City:    "Springfield",
		Country: "US",
		ZipCode: "12345",
		Phone:   "+1-555-0100",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	sellerID := uuid.New()
	discount := int64(500)
	productA := &entity.Product{
		ID:       uuid.New(),
		OwnerID:  sellerID,
		Name:     "Widget",
		Price:    1000,
		Stock:    10,
		IsActive: true,
	}
	productB := &entity.Product{
		ID:            uuid.New(),
		OwnerID:       sellerID,
		Name:          "Gadget",
		Price:         800,
		DiscountPrice: &discount,
		Stock:         3,
		IsActive:      true,
	}

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.productRepo.EXPECT().FindByID(ctx, productA.ID).Return(productA, nil)
	fx.productRepo.EXPECT().DecrementStock(ctx, productA.ID, 2).Return(nil)
	fx.productRepo.EXPECT().FindByID(ctx, productB.ID).Return(productB, nil)
	fx.productRepo.EXPECT().DecrementStock(ctx, productB.ID, 1).Return(nil)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, buyerID, &usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: productA.ID, Quantity: 2},
			{ProductID: productB.ID, Quantity: 1},
		},
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, buyerID, order.BuyerID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 2)

	// The discounted price is captured per line, then the flat shipping
	// charge and 10% tax are added on top of the item total.
	assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(500), order.Items[1].UnitPrice)
	assert.Equal(t, int64(2500), order.TotalAmount)
	assert.Equal(t, int64(500), order.ShippingCharge)
	assert.Equal(t, int64(250), order.TaxAmount)
	assert.Equal(t, int64(3250), order.FinalAmount)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, sellerID, item.SellerID)
	}
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	order, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
	})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_CreateOrder_MissingAddressFields(t *testing.T) {
	fx := createTestOrderService(t)

	addr := validShippingAddress()
	addr.City = ""
	addr.Phone = "  "

	order, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: addr,
		PaymentMethod:   "cod",
	})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "phone")
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	productA := &entity.Product{ID: uuid.New(), OwnerID: sellerID, Name: "Widget", Price: 1000, Stock: 10, IsActive: true}
	productB := &entity.Product{ID: uuid.New(), OwnerID: sellerID, Name: "Gadget", Price: 800, Stock: 1, IsActive: true}

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	// The first line reserves fine; the second fails and the whole unit of
	// work aborts without ever creating the order.
	fx.productRepo.EXPECT().FindByID(ctx, productA.ID).Return(productA, nil)
	fx.productRepo.EXPECT().DecrementStock(ctx, productA.ID, 1).Return(nil)
	fx.productRepo.EXPECT().FindByID(ctx, productB.ID).Return(productB, nil)
	fx.productRepo.EXPECT().DecrementStock(ctx, productB.ID, 5).Return(repository.ErrInsufficientStock)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: productA.ID, Quantity: 1},
			{ProductID: productB.ID, Quantity: 5},
		},
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
	})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_InactiveProduct(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), OwnerID: uuid.New(), Name: "Retired", Price: 1000, Stock: 10, IsActive: false}

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
	})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrProductInactive)
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	missingID := uuid.New()

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.productRepo.EXPECT().FindByID(ctx, missingID).Return(nil, repository.ErrProductNotFound)

	order, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: missingID, Quantity: 1}},
		ShippingAddress: validShippingAddress(),
		PaymentMethod:   "cod",
	})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func newTestOrder(buyerID, sellerID uuid.UUID, status entity.OrderStatus) *entity.Order {
	orderID := uuid.New()

	return &entity.Order{
		ID:      orderID,
		BuyerID: buyerID,
		Items: []entity.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   uuid.New(),
				SellerID:    sellerID,
				ProductName: "Widget",
				Quantity:    2,
				UnitPrice:   1000,
			},
		},
		Status:         status,
		PaymentStatus:  entity.PaymentPending,
		PaymentMethod:  "cod",
		TotalAmount:    2000,
		ShippingCharge: 500,
		TaxAmount:      200,
		FinalAmount:    2700,
		Version:        1,
		CreatedAt:      time.Now(),
	}
}

func TestOrderService_TransitionStatus_SellerAccepts(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), sellerID, entity.OrderPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, sellerID, true).Return(nil)
	fx.orderRepo.EXPECT().Update(ctx, order).Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderProcessing, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, updated.Status)
}

func TestOrderService_TransitionStatus_CancelReleasesStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	order := newTestOrder(buyerID, uuid.New(), entity.OrderPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, order.Items[0].SellerID, true).Return(nil)
	fx.productRepo.EXPECT().IncrementStock(ctx, order.Items[0].ProductID, order.Items[0].Quantity).Return(nil)
	fx.orderRepo.EXPECT().Update(ctx, order).Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderCancelled, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, updated.Status)
	assert.Equal(t, "changed my mind", updated.CancelledReason)
	require.NotNil(t, updated.CancelledAt)
}

func TestOrderService_TransitionStatus_CancelRequiresReason(t *testing.T) {
	fx := createTestOrderService(t)

	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	updated, err := fx.service.TransitionStatus(context.Background(), caller, uuid.New(), entity.OrderCancelled, "  ")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_TransitionStatus_RepeatedCancelConflicts(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderCancelled)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, order.Items[0].SellerID, true).Return(nil)

	// A second cancel must report a conflict; stock is never released twice.
	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderCancelled, "again")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	fx.productRepo.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_TransitionStatus_ShippedCannotCancel(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderShipped)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, order.Items[0].SellerID, true).Return(nil)

	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderCancelled, "too late")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_TransitionStatus_StaleVersionConflicts(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), sellerID, entity.OrderPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, sellerID, true).Return(nil)
	fx.orderRepo.EXPECT().Update(ctx, order).Return(repository.ErrStaleOrder)

	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderProcessing, "")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestOrderService_TransitionStatus_ForbiddenSeller(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderPending)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.factory.EXPECT().ProductRepo().Return(fx.productRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().
		Authorize(ctx, caller, order.Items[0].SellerID, true).
		Return(errors.Wrap(domainerrors.ErrForbidden, "seller does not own this resource"))

	updated, err := fx.service.TransitionStatus(ctx, caller, order.ID, entity.OrderProcessing, "")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_UpdatePaymentStatus_PaidAfterDelivery(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), sellerID, entity.OrderDelivered)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, sellerID, true).Return(nil)
	fx.orderRepo.EXPECT().Update(ctx, order).Return(nil)

	updated, err := fx.service.UpdatePaymentStatus(ctx, caller, order.ID, entity.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, updated.PaymentStatus)
	require.NotNil(t, updated.PaidAt)
}

func TestOrderService_UpdatePaymentStatus_PaidRequiresDelivery(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	caller := service.Caller{ID: sellerID, Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), sellerID, entity.OrderShipped)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, sellerID, true).Return(nil)

	updated, err := fx.service.UpdatePaymentStatus(ctx, caller, order.ID, entity.PaymentPaid)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_UpdatePaymentStatus_CancelledOrderRejected(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderCancelled)

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, order.Items[0].SellerID, true).Return(nil)

	updated, err := fx.service.UpdatePaymentStatus(ctx, caller, order.ID, entity.PaymentFailed)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_UpdatePaymentStatus_FailedMayRetryToPaid(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderDelivered)
	order.PaymentStatus = entity.PaymentFailed

	passthroughTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, order.Items[0].SellerID, true).Return(nil)
	fx.orderRepo.EXPECT().Update(ctx, order).Return(nil)

	updated, err := fx.service.UpdatePaymentStatus(ctx, caller, order.ID, entity.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, updated.PaymentStatus)
}

func TestOrderService_GetOrder_BuyerSeesOwnOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	caller := service.Caller{ID: buyerID, Role: entity.RoleCustomer}
	order := newTestOrder(buyerID, uuid.New(), entity.OrderPending)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.accessCtrl.EXPECT().Authorize(ctx, caller, buyerID, false).Return(nil)

	got, err := fx.service.GetOrder(ctx, caller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestOrderService_GetOrder_SellerWithoutItemsForbidden(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleSeller}
	order := newTestOrder(uuid.New(), uuid.New(), entity.OrderPending)

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

	got, err := fx.service.GetOrder(ctx, caller, order.ID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleAdmin}
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	got, err := fx.service.GetOrder(ctx, caller, orderID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListSellerOrders_ApprovalGateApplies(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	caller := service.Caller{ID: uuid.New(), Role: entity.RoleSeller}

	fx.accessCtrl.EXPECT().
		Authorize(ctx, caller, caller.ID, true).
		Return(errors.Wrap(domainerrors.ErrSellerNotApproved, "approval status is pending"))

	orders, err := fx.service.ListSellerOrders(ctx, caller)
	assert.Nil(t, orders)
	assert.ErrorIs(t, err, domainerrors.ErrSellerNotApproved)
}

func TestOrderService_ListBuyerOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	buyerID := uuid.New()
	expected := []*entity.Order{newTestOrder(buyerID, uuid.New(), entity.OrderPending)}

	fx.orderRepo.EXPECT().ListByBuyer(ctx, buyerID).Return(expected, nil)

	orders, err := fx.service.ListBuyerOrders(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}
