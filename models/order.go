package models

import "time"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TableNumber   int         `gorm:"not null;index" json:"tableNumber"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"totalAmount"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'unpaid'" json:"paymentStatus"`
	WaiterID      *uint       `gorm:"index" json:"-"`
	Waiter        *User       `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updatedAt"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}

// Order statuses. The API validates membership only; any status may be set
// from any other (the kitchen and waiter UIs only ever move forward).
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderPreparing, OrderReady, OrderServed:
		return true
	}
	return false
}

func ValidPaymentStatus(status string) bool {
	return status == PaymentUnpaid || status == PaymentPaid
}

// ActiveOrderStatuses are the statuses that keep a table occupied while the
// order is still unpaid.
var ActiveOrderStatuses = []string{OrderPending, OrderPreparing, OrderReady, OrderServed}
