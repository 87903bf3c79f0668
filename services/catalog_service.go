package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/models"
)

// CatalogService reads categories and foods. Writes are limited to the admin
// price/availability edit.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type FoodFilter struct {
	Search     string
	CategoryID uint
}

// ListFoods returns available foods, optionally narrowed by a case-insensitive
// name search and a category.
func (s *CatalogService) ListFoods(ctx context.Context, f FoodFilter) ([]models.Food, error) {
	q := s.db.WithContext(ctx).Preload("Category").Where("is_available = ?", true)
	if search := strings.TrimSpace(f.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}

	var foods []models.Food
	if err := q.Order("id asc").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetFood(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).Preload("Category").First(&food, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("food %d: %w", id, ErrFoodNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get food %d: %w", id, err)
	}
	return &food, nil
}

// FoodsByID loads the given ids in one query. Missing ids are simply absent
// from the result.
func (s *CatalogService) FoodsByID(ctx context.Context, ids []uint) (map[uint]models.Food, error) {
	out := make(map[uint]models.Food, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var foods []models.Food
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("load foods: %w", err)
	}
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}

type FoodUpdate struct {
	Price       *decimal.Decimal
	IsAvailable *bool
}

// UpdateFood lets the back office reprice a food or take it off the menu.
// Existing orders are unaffected.
func (s *CatalogService) UpdateFood(ctx context.Context, id uint, upd FoodUpdate) (*models.Food, error) {
	food, err := s.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return nil, FormErrors{"price": {"Ensure this value is greater than or equal to 0."}}
		}
		changes["price"] = upd.Price.Round(2)
	}
	if upd.IsAvailable != nil {
		changes["is_available"] = *upd.IsAvailable
	}
	if len(changes) == 0 {
		return food, nil
	}

	if err := s.db.WithContext(ctx).Model(food).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update food %d: %w", id, err)
	}
	return s.GetFood(ctx, id)
}
