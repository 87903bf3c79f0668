package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// Home lists available foods with the optional search and category filters.
func (cc *CatalogController) Home(c *gin.Context) {
	filter := services.FoodFilter{Search: c.Query("search")}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
			return
		}
		filter.CategoryID = uint(id)
	}

	foods, err := cc.Catalog.ListFoods(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("home: list foods")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load the menu"))
		return
	}
	categories, err := cc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("home: list categories")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load the menu"))
		return
	}

	sess := session.FromContext(c)
	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"foods":      foods,
		"categories": categories,
		"search":     filter.Search,
		"category":   filter.CategoryID,
		"cart_count": sess.Cart.Count(),
		"messages":   sess.Flashes(),
	})
}

func (cc *CatalogController) Categories(c *gin.Context) {
	categories, err := cc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

func (cc *CatalogController) FoodDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	food, err := cc.Catalog.GetFood(c.Request.Context(), id)
	if errors.Is(err, services.ErrFoodNotFound) {
		utils.RespondError(c, http.StatusNotFound, services.ErrFoodNotFound)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food detail", food)
}
