package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusOnTheWay  OrderStatus = "On the Way"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// next lists the forward transition of every non-terminal status.
var next = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusOnTheWay,
	OrderStatusOnTheWay:  OrderStatusDelivered,
}

// ParseOrderStatus validates a status label coming from outside.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusOnTheWay, OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the fulfillment flow allows moving from s to to.
// Cancelled is reachable from every non-terminal status.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return next[s] == to
}

type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       *uint           `gorm:"index" json:"user_id,omitempty"`
	User         *User           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CustomerName string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	Phone        string          `gorm:"type:varchar(15);not null" json:"phone"`
	Address      string          `gorm:"type:text;not null" json:"address"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d - %s", o.ID, o.CustomerName)
}
