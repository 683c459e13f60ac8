package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(50);not null;default:'waiter'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// Staff roles. Only admin is gated by middleware; the rest are
// conventions shared with the frontends.
const (
	RoleAdmin   = "admin"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
	RoleCashier = "cashier"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWaiter, RoleKitchen, RoleCashier:
		return true
	}
	return false
}
