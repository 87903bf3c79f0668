package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem keeps the price the food had when the order was committed.
// FoodID becomes NULL once the food is deleted from the catalog.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	FoodID       *uint           `gorm:"index" json:"food_id"`
	Food         *Food           `gorm:"foreignKey:FoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"food,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price_at_order"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// Subtotal is computed from the frozen price, never from the live catalog.
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.PriceAtOrder.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

func (oi OrderItem) String() string {
	name := "Removed Item"
	if oi.Food != nil {
		name = oi.Food.Name
	}
	return fmt.Sprintf("%d x %s", oi.Quantity, name)
}
