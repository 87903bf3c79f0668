package controllers_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/foodcourt/models"
)

func TestHomeFilters(t *testing.T) {
	app := newTestApp(t)
	drinks := models.Category{Name: "Drinks"}
	require.NoError(t, app.db.Create(&drinks).Error)
	require.NoError(t, app.db.Create(&models.Food{
		CategoryID: drinks.ID, Name: "Masala Chai", Price: decimal.RequireFromString("1.50"), IsAvailable: true, IsVeg: true,
	}).Error)
	require.NoError(t, app.db.Create(&models.Food{
		CategoryID: drinks.ID, Name: "Sold Out Shake", Price: decimal.RequireFromString("4.00"), IsAvailable: false, IsVeg: true,
	}).Error)
	cl := app.newClient()

	home := data(t, cl.get("/"))
	assert.Len(t, home["foods"], 3)
	assert.Len(t, home["categories"], 2)

	home = data(t, cl.get("/?search=CHAI"))
	require.Len(t, home["foods"], 1)
	assert.Equal(t, "Masala Chai", home["foods"].([]interface{})[0].(map[string]interface{})["name"])

	home = data(t, cl.get("/?category=" + itoa(drinks.ID)))
	assert.Len(t, home["foods"], 1)

	assert.Equal(t, http.StatusBadRequest, cl.get("/?category=drinks").Code)
}

func TestCategories(t *testing.T) {
	app := newTestApp(t)
	w := app.newClient().get("/categories")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
}

func TestFoodDetail(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.get("/food/7")
	require.Equal(t, http.StatusOK, w.Code)
	food := data(t, w)
	assert.Equal(t, "Paneer Tikka", food["name"])
	assert.Equal(t, "10", food["price"])

	assert.Equal(t, http.StatusNotFound, cl.get("/food/404").Code)
	assert.Equal(t, http.StatusBadRequest, cl.get("/food/x").Code)
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	w := app.newClient().get("/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
