package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/foodcourt/middlewares"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

const placeOrderFailed = "Could not place your order. Please review your cart and try again."

type OrderController struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{Checkout: checkout, Orders: orders}
}

// CheckoutPage previews the order. An empty cart goes back to the menu.
func (oc *OrderController) CheckoutPage(c *gin.Context) {
	sess := session.FromContext(c)
	if sess.Cart.IsEmpty() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	preview, err := oc.Checkout.Preview(c.Request.Context(), sess.Cart)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("checkout: preview")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load checkout"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout", gin.H{
		"cart_items": preview.Lines,
		"total":      preview.Total,
		"item_count": preview.ItemCount,
		"messages":   sess.Flashes(),
	})
}

// PlaceOrder commits the session cart as an order.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	sess := session.FromContext(c)
	in := services.PlaceOrderInput{
		CustomerName: c.PostForm("name"),
		Phone:        c.PostForm("phone"),
		Address:      c.PostForm("address"),
	}
	if uid, ok := middlewares.CurrentUserID(c); ok {
		in.UserID = &uid
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), in, sess.Cart)
	if err != nil {
		var formErrs services.FormErrors
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.Redirect(http.StatusFound, "/")
		case errors.As(err, &formErrs):
			fields := make([]string, 0, len(formErrs))
			for f := range formErrs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				for _, msg := range formErrs[f] {
					sess.AddFlash(f + ": " + msg)
				}
			}
			c.Redirect(http.StatusFound, "/checkout")
		default:
			utils.ErrorLogger.WithFields(logrus.Fields{
				"session": sess.ID(),
			}).WithError(err).Error("place order failed")
			sess.AddFlash(placeOrderFailed)
			c.Redirect(http.StatusFound, "/checkout")
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, order.String()+" placed, total "+utils.FormatPrice(order.TotalPrice), order)
}

// CustomerDashboard lists the caller's orders, newest first.
func (oc *OrderController) CustomerDashboard(c *gin.Context) {
	uid, _ := middlewares.CurrentUserID(c)
	orders, err := oc.Orders.ListForUser(c.Request.Context(), uid)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("dashboard: list orders")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load your orders"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Your orders", orders)
}
