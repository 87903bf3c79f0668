package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/foodcourt/models"
)

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.get("/checkout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCheckoutPreview(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/42")

	w := cl.get("/checkout")
	require.Equal(t, http.StatusOK, w.Code)
	preview := data(t, w)
	assert.Equal(t, "10", preview["total"])
	assert.Len(t, preview["cart_items"], 1)
}

func TestPlaceOrder(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/3")

	w := cl.postForm("/place-order", checkoutForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := data(t, w)
	assert.Equal(t, "25", order["total_price"])
	assert.Equal(t, "Pending", order["status"])
	assert.Len(t, order["items"], 2)

	var count int64
	app.db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// the cart is gone, so checkout bounces back to the menu
	assert.Equal(t, http.StatusFound, cl.get("/checkout").Code)
	assert.EqualValues(t, 0, data(t, cl.get("/"))["cart_count"])
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.postForm("/place-order", checkoutForm())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPlaceOrderGetRedirects(t *testing.T) {
	app := newTestApp(t)
	w := app.newClient().get("/place-order")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPlaceOrderMissingFoodKeepsCart(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/404")

	w := cl.postForm("/place-order", checkoutForm())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/checkout", w.Header().Get("Location"))

	var count int64
	app.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)

	checkout := cl.get("/checkout")
	require.Equal(t, http.StatusOK, checkout.Code)
	assert.Equal(t, []string{"Could not place your order. Please review your cart and try again."}, messages(t, checkout))

	cart := data(t, cl.get("/cart"))
	assert.Equal(t, "10", cart["total"])
}

func TestPlaceOrderValidation(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")

	w := cl.postForm("/place-order", url.Values{"phone": {"123"}, "address": {"somewhere"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/checkout", w.Header().Get("Location"))

	assert.Equal(t, []string{"name: This field is required."}, messages(t, cl.get("/checkout")))
}

func TestCustomerDashboard(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.get("/customer-dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/signup", w.Header().Get("Location"))

	signup := cl.postForm("/signup", url.Values{"username": {"asha"}, "password1": {"s3cretpass"}, "password2": {"s3cretpass"}})
	require.Equal(t, http.StatusCreated, signup.Code, signup.Body.String())

	cl.xhr("/add-to-cart/3")
	require.Equal(t, http.StatusCreated, cl.postForm("/place-order", checkoutForm()).Code)
	cl.xhr("/add-to-cart/7")
	require.Equal(t, http.StatusCreated, cl.postForm("/place-order", checkoutForm()).Code)

	// a guest order from someone else
	guest := app.newClient()
	guest.xhr("/add-to-cart/7")
	require.Equal(t, http.StatusCreated, guest.postForm("/place-order", checkoutForm()).Code)

	w = cl.get("/customer-dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	orders, ok := decode(t, w)["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, orders, 2)
	assert.Equal(t, "10", orders[0].(map[string]interface{})["total_price"])
	assert.Equal(t, "5", orders[1].(map[string]interface{})["total_price"])
}
