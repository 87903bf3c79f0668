package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/foodcourt/database"
	"github.com/yeremiapane/foodcourt/models"
)

// setupTestDB opens a private in-memory SQLite database. A single connection
// keeps every statement on the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedFood(t *testing.T, db *gorm.DB, id uint, categoryID uint, name, price string, available bool) models.Food {
	t.Helper()
	f := models.Food{
		ID:          id,
		CategoryID:  categoryID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
		IsVeg:       true,
	}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// seedScenario creates food 7 at 10.00 and food 3 at 5.00.
func seedScenario(t *testing.T, db *gorm.DB) {
	t.Helper()
	c := seedCategory(t, db, "Mains")
	seedFood(t, db, 7, c.ID, "Paneer Tikka", "10.00", true)
	seedFood(t, db, 3, c.ID, "Dal", "5.00", true)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

var bg = context.Background()
