// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/router/handler"
	"market/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	OrderHandler   *handler.OrderHandler
	SellerHandler  *handler.SellerHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	orderHandler   *handler.OrderHandler
	sellerHandler  *handler.SellerHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		orderHandler:   params.OrderHandler,
		sellerHandler:  params.SellerHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/customer", r.userHandler.RegisterCustomer)
		authGroup.POST("/register/seller", r.userHandler.RegisterSeller)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Order routes. Checkout and the buyer list are customer-only; reads and
	// status transitions are authorized per order inside the use case.
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder, r.authMiddleware.RequireRole(entity.RoleCustomer.String()))
		orderGroup.GET("", r.orderHandler.ListOrders, r.authMiddleware.RequireRole(entity.RoleCustomer.String()))
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.PUT("/:id/status", r.orderHandler.TransitionStatus)
		orderGroup.PUT("/:id/payment-status", r.orderHandler.UpdatePaymentStatus)
	}

	// Seller routes that require authentication and the "seller" role.
	// The approval gate inside the use cases decides what a pending or
	// rejected seller may still do.
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(r.authMiddleware.Authenticate)
	sellerGroup.Use(r.authMiddleware.RequireRole(entity.RoleSeller.String()))
	{
		sellerGroup.GET("/approval-status", r.sellerHandler.GetApprovalStatus)
		sellerGroup.POST("/resubmit", r.sellerHandler.Resubmit)
		sellerGroup.GET("/orders", r.sellerHandler.ListOrders)
		sellerGroup.GET("/dashboard", r.sellerHandler.GetStats)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/sellers", r.adminHandler.ListSellers)
		adminGroup.PUT("/sellers/:id/decision", r.adminHandler.Decide)
		adminGroup.PUT("/sellers/:id/demote", r.adminHandler.Demote)
		adminGroup.GET("/stats", r.adminHandler.GetStats)
	}
}
