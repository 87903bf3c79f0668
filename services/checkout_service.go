package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/foodcourt/models"
)

type CheckoutLine struct {
	Food     models.Food     `json:"food"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CheckoutPreview is a cart priced at current catalog prices.
type CheckoutPreview struct {
	Lines     []CheckoutLine  `json:"cart_items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Line returns the line for foodID, if it resolved.
func (p *CheckoutPreview) Line(foodID uint) (CheckoutLine, bool) {
	for _, l := range p.Lines {
		if l.Food.ID == foodID {
			return l, true
		}
	}
	return CheckoutLine{}, false
}

type CheckoutService struct {
	catalog *CatalogService
}

func NewCheckoutService(catalog *CatalogService) *CheckoutService {
	return &CheckoutService{catalog: catalog}
}

// Preview prices every cart entry with the live food price. Entries whose food
// no longer exists are left out of both the lines and the total.
func (s *CheckoutService) Preview(ctx context.Context, cart *models.Cart) (*CheckoutPreview, error) {
	ids := cart.IDs()
	foods, err := s.catalog.FoodsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	preview := &CheckoutPreview{Lines: make([]CheckoutLine, 0, len(ids)), Total: decimal.Zero}
	for _, id := range ids {
		food, ok := foods[id]
		if !ok {
			continue
		}
		qty := cart.Quantity(id)
		subtotal := food.Price.Mul(decimal.NewFromInt(int64(qty)))
		preview.Lines = append(preview.Lines, CheckoutLine{Food: food, Quantity: qty, Subtotal: subtotal})
		preview.Total = preview.Total.Add(subtotal)
		preview.ItemCount += qty
	}
	return preview, nil
}
