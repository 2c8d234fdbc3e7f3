package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Monetary columns store cents.
// The version column backs optimistic locking; every successful update bumps it.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus   string    `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod   string    `gorm:"type:varchar(20);not null"`
	ShippingStreet  string    `gorm:"type:varchar(255);not null"`
	ShippingCity    string    `gorm:"type:varchar(100);not null"`
	ShippingCountry string    `gorm:"type:varchar(100);not null"`
	ShippingZipCode string    `gorm:"type:varchar(20);not null"`
	ShippingPhone   string    `gorm:"type:varchar(30);not null"`
	TotalAmount     int64     `gorm:"not null"`
	ShippingCharge  int64     `gorm:"not null"`
	TaxAmount       int64     `gorm:"not null"`
	DiscountAmount  int64     `gorm:"not null;default:0"`
	FinalAmount     int64     `gorm:"not null"`
	CancelledReason string    `gorm:"type:text"`
	CancelledAt     *time.Time
	PaidAt          *time.Time
	Version         int `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name and unit price are
// captured at purchase time so later product edits leave history intact.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
