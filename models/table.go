package models

import "time"

type Table struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Number         int       `gorm:"unique;not null" json:"number"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	Status         string    `gorm:"type:varchar(50);not null;default:'free'" json:"status"`
	CurrentOrderID *uint     `json:"currentOrder,omitempty"`
	CurrentOrder   *Order    `gorm:"foreignKey:CurrentOrderID" json:"-"`
	CreatedAt      time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null" json:"updatedAt"`
}

// Table statuses. The stored column is a fallback; GET /api/tables derives
// occupancy live from the order ledger.
const (
	TableFree            = "free"
	TableOccupied        = "occupied"
	TableAwaitingPayment = "awaiting-payment"
)

func ValidTableStatus(status string) bool {
	switch status {
	case TableFree, TableOccupied, TableAwaitingPayment:
		return true
	}
	return false
}
