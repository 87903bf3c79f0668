package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food is a catalog item. Price may change at any time; orders keep their own copy.
type Food struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	Image       string          `gorm:"type:varchar(255)" json:"image"`
	IsAvailable bool            `gorm:"not null" json:"is_available"`
	IsVeg       bool            `gorm:"not null" json:"is_veg"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
