package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/foodcourt/metrics"
	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

type CartController struct {
	Checkout *services.CheckoutService
}

func NewCartController(checkout *services.CheckoutService) *CartController {
	return &CartController{Checkout: checkout}
}

// AddToCart does not look the food up; unknown ids are skipped when priced.
func (cc *CartController) AddToCart(c *gin.Context) {
	id, ok := idParam(c, "food_id")
	if !ok {
		return
	}

	sess := session.FromContext(c)
	sess.Cart.Add(id)
	metrics.CartMutations.WithLabelValues("add").Inc()

	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"cart_count": sess.Cart.Count(),
		})
		return
	}

	sess.AddFlash("Item added to cart!")
	c.Redirect(http.StatusFound, "/")
}

func (cc *CartController) ViewCart(c *gin.Context) {
	preview, err := cc.Checkout.Preview(c.Request.Context(), session.FromContext(c).Cart)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("cart: preview")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load your cart"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", preview)
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	id, ok := idParam(c, "food_id")
	if !ok {
		return
	}

	session.FromContext(c).Cart.Remove(id)
	metrics.CartMutations.WithLabelValues("remove").Inc()
	c.Redirect(http.StatusFound, "/cart")
}

// UpdateQuantity steps a line up or down by one and answers with the
// repriced line and cart.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	id, ok := idParam(c, "food_id")
	if !ok {
		return
	}
	action := c.Param("action")

	cart := session.FromContext(c).Cart
	qty, err := cart.Adjust(id, action)
	if errors.Is(err, models.ErrInvalidDirection) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	metrics.CartMutations.WithLabelValues(action).Inc()

	preview, err := cc.Checkout.Preview(c.Request.Context(), cart)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("update cart: preview")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not price your cart"})
		return
	}

	subtotal := 0.0
	if line, ok := preview.Line(id); ok {
		subtotal = line.Subtotal.Round(2).InexactFloat64()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"quantity":   qty,
		"subtotal":   subtotal,
		"total":      preview.Total.Round(2).InexactFloat64(),
		"cart_count": cart.Count(),
	})
}
