// Package seeders fills an empty database with a demo catalog.
package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/models"
)

type seedFood struct {
	name, description, price, image string
	veg                             bool
}

var catalog = []struct {
	category string
	image    string
	foods    []seedFood
}{
	{"Pizza", "category_images/pizza.png", []seedFood{
		{"Margherita", "Tomato, mozzarella and basil.", "8.50", "food_images/margherita.jpg", true},
		{"Pepperoni", "Spicy pepperoni with mozzarella.", "10.00", "food_images/pepperoni.jpg", false},
	}},
	{"Burgers", "category_images/burgers.png", []seedFood{
		{"Veg Burger", "Grilled vegetable patty.", "6.00", "food_images/veg-burger.jpg", true},
		{"Chicken Burger", "Crispy chicken fillet.", "7.25", "food_images/chicken-burger.jpg", false},
	}},
	{"Drinks", "category_images/drinks.png", []seedFood{
		{"Mango Lassi", "Yoghurt and mango.", "3.00", "food_images/lassi.jpg", true},
		{"Cold Coffee", "Iced and sweet.", "2.50", "food_images/cold-coffee.jpg", true},
	}},
}

// SeedCatalog inserts the demo catalog. Rows are matched by name so running it
// twice does not duplicate anything.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range catalog {
			image := c.image
			category := models.Category{Name: c.category}
			if err := tx.Where(models.Category{Name: c.category}).
				Attrs(models.Category{Image: &image}).
				FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.category, err)
			}

			for _, f := range c.foods {
				food := models.Food{
					CategoryID:  category.ID,
					Name:        f.name,
					Description: f.description,
					Price:       decimal.RequireFromString(f.price),
					Image:       f.image,
					IsAvailable: true,
					IsVeg:       f.veg,
				}
				if err := tx.Where("name = ? AND category_id = ?", f.name, category.ID).
					FirstOrCreate(&food).Error; err != nil {
					return fmt.Errorf("seed food %s: %w", f.name, err)
				}
			}
		}
		return nil
	})
}
