package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Monetary columns store cents.
// A CHECK constraint keeps stock from ever going negative.
type ProductModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Price         int64     `gorm:"not null"`
	DiscountPrice *int64
	Stock         int  `gorm:"not null;default:0;check:stock >= 0"`
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
