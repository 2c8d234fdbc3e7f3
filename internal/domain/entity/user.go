// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID            uuid.UUID      // The Global Unique Identifier (GUID) for the user.
	Email         string         // The user's primary contact email, used as a login identifier.
	Name          string         // The user's display name or real name.
	PasswordHash  string         // The bcrypt hash of the user's password. Never exposed outward.
	Role          Role           // The user's role within the marketplace.
	SellerProfile *SellerProfile // A pointer to the seller-specific profile. Will be nil unless Role is "seller".
	CreatedAt     time.Time      // Timestamp of when this user account was created.
	UpdatedAt     time.Time      // Timestamp of the last modification to this user's data.
}

// IsSeller reports whether this user carries the seller role.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsAdmin reports whether this user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
