// Package model defines the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`

	SellerProfile *SellerProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SellerProfileModel mirrors the 'seller_profiles' table. UserID references users.id (UUID).
type SellerProfileModel struct {
	UserID          uuid.UUID `gorm:"primaryKey"`
	BusinessName    string    `gorm:"type:varchar(100);not null"`
	ApprovalStatus  string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string    `gorm:"type:text"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}
