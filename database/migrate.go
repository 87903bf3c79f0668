package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/utils"
)

// Migrate creates or updates every table the storefront uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
