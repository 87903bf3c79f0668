package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/utils"
)

// AdminController is the fulfillment side: it moves orders along and keeps
// the catalog prices current.
type AdminController struct {
	Orders  *services.OrderService
	Catalog *services.CatalogService
}

func NewAdminController(orders *services.OrderService, catalog *services.CatalogService) *AdminController {
	return &AdminController{Orders: orders, Catalog: catalog}
}

func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "order_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := ac.Orders.UpdateStatus(c.Request.Context(), id, status)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
	}
}

func (ac *AdminController) UpdateFood(c *gin.Context) {
	id, ok := idParam(c, "food_id")
	if !ok {
		return
	}

	var req struct {
		Price       *decimal.Decimal `json:"price"`
		IsAvailable *bool            `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price == nil && req.IsAvailable == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	food, err := ac.Catalog.UpdateFood(c.Request.Context(), id, services.FoodUpdate{
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	var formErrs services.FormErrors
	switch {
	case errors.As(err, &formErrs):
		utils.RespondFormErrors(c, http.StatusBadRequest, "Invalid food update", formErrs)
	case errors.Is(err, services.ErrFoodNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrFoodNotFound)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusOK, "Food updated", food)
	}
}
