package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/metrics"
	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/utils"
)

type PlaceOrderInput struct {
	CustomerName string
	Phone        string
	Address      string
	// UserID is nil for guest checkouts.
	UserID *uint
}

func (in *PlaceOrderInput) Validate() error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	errs := FormErrors{}
	if in.CustomerName == "" {
		errs.Add("name", "This field is required.")
	} else if utf8.RuneCountInString(in.CustomerName) > 100 {
		errs.Add("name", "Ensure this value has at most 100 characters.")
	}
	if in.Phone == "" {
		errs.Add("phone", "This field is required.")
	} else if utf8.RuneCountInString(in.Phone) > 15 {
		errs.Add("phone", "Ensure this value has at most 15 characters.")
	}
	if in.Address == "" {
		errs.Add("address", "This field is required.")
	}
	return errs.orNil()
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder turns the cart into an order inside one transaction. Each item
// records the food price at this instant and the order total is the sum of
// those frozen prices. A food that vanished since checkout aborts everything.
// The cart is cleared only once the transaction has committed.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput, cart *models.Cart) (*models.Order, error) {
	if cart.IsEmpty() {
		metrics.OrdersPlaced.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}
	if err := in.Validate(); err != nil {
		metrics.OrdersPlaced.WithLabelValues("invalid").Inc()
		return nil, err
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:       in.UserID,
			CustomerName: in.CustomerName,
			Phone:        in.Phone,
			Address:      in.Address,
			TotalPrice:   decimal.Zero,
			Status:       models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		total := decimal.Zero
		for _, id := range cart.IDs() {
			var food models.Food
			err := tx.First(&food, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("food %d: %w", id, ErrFoodNotFound)
			}
			if err != nil {
				return fmt.Errorf("load food %d: %w", id, err)
			}

			foodID := food.ID
			item := models.OrderItem{
				OrderID:      order.ID,
				FoodID:       &foodID,
				Quantity:     cart.Quantity(id),
				PriceAtOrder: food.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order item for food %d: %w", id, err)
			}
			item.Food = &food
			order.Items = append(order.Items, item)
			total = total.Add(item.Subtotal())
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("total_price", total).Error; err != nil {
			return fmt.Errorf("update order total: %w", err)
		}
		order.TotalPrice = total
		return nil
	})
	if err != nil {
		metrics.OrdersPlaced.WithLabelValues("failed").Inc()
		utils.ErrorLogger.WithFields(logrus.Fields{
			"customer": in.CustomerName,
			"items":    cart.Count(),
		}).WithError(err).Error("order placement rolled back")
		return nil, err
	}

	cart.Clear()

	metrics.OrdersPlaced.WithLabelValues("success").Inc()
	metrics.OrderValue.Observe(order.TotalPrice.InexactFloat64())
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    utils.FormatPrice(order.TotalPrice),
		"items":    len(order.Items),
	}).Info("order placed")
	return &order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Food").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Food").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus is the fulfillment side's only write. Totals and contact
// fields are never touched after placement.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, to models.OrderStatus) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
		}
		if err != nil {
			return fmt.Errorf("get order %d: %w", id, err)
		}
		if !order.Status.CanTransitionTo(to) {
			return fmt.Errorf("%s -> %s: %w", order.Status, to, ErrInvalidTransition)
		}
		return tx.Model(&models.Order{}).Where("id = ?", id).Update("status", to).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"order_id": id, "status": to}).Info("order status updated")
	return s.GetOrder(ctx, id)
}
