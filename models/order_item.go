package models

import "time"

// OrderItem is a line of an order. Name, price and image are copied from the
// menu item at order time so later menu edits never change order history.
type OrderItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	Order               Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID          uint      `gorm:"not null" json:"menuItem"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Image               string    `gorm:"type:varchar(255)" json:"image"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	SpecialInstructions string    `gorm:"type:text" json:"specialInstructions"`
	CreatedAt           time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"not null" json:"updatedAt"`
}

// Subtotal is price times quantity using the snapshotted price.
func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
