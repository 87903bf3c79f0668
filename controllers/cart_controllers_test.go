package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartXHR(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.xhr("/add-to-cart/7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","cart_count":1}`, w.Body.String())

	w = cl.xhr("/add-to-cart/7")
	assert.JSONEq(t, `{"status":"success","cart_count":2}`, w.Body.String())
}

func TestAddToCartRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.get("/add-to-cart/3")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	home := cl.get("/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Equal(t, []string{"Item added to cart!"}, messages(t, home))
	assert.EqualValues(t, 1, data(t, home)["cart_count"])

	// flashes are shown once
	assert.Empty(t, messages(t, cl.get("/")))
}

func TestAddToCartAcceptsUnknownFood(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	w := cl.xhr("/add-to-cart/999")
	assert.JSONEq(t, `{"status":"success","cart_count":1}`, w.Body.String())

	cart := data(t, cl.get("/cart"))
	assert.Empty(t, cart["cart_items"])
	assert.Equal(t, "0", cart["total"])
}

func TestAddToCartBadID(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	assert.Equal(t, http.StatusBadRequest, cl.get("/add-to-cart/abc").Code)
	assert.Equal(t, http.StatusBadRequest, cl.get("/add-to-cart/0").Code)
}

func TestViewCartPricesLines(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/3")

	w := cl.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	cart := data(t, w)
	assert.Equal(t, "25", cart["total"])
	assert.EqualValues(t, 3, cart["item_count"])
	assert.Len(t, cart["cart_items"], 2)
}

func TestRemoveFromCart(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/3")

	w := cl.get("/remove/7")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	cart := data(t, cl.get("/cart"))
	assert.Equal(t, "5", cart["total"])

	// removing something absent is harmless
	assert.Equal(t, http.StatusFound, cl.postForm("/remove/42", nil).Code)
}

func TestUpdateCartQuantity(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/7")
	cl.xhr("/add-to-cart/3")

	w := cl.get("/update-cart/7/plus")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","quantity":3,"subtotal":30,"total":35,"cart_count":4}`, w.Body.String())

	w = cl.get("/update-cart/3/minus")
	assert.JSONEq(t, `{"status":"success","quantity":0,"subtotal":0,"total":30,"cart_count":3}`, w.Body.String())

	// a line that is not in the cart is left alone
	w = cl.get("/update-cart/3/plus")
	assert.JSONEq(t, `{"status":"success","quantity":0,"subtotal":0,"total":30,"cart_count":3}`, w.Body.String())

	w = cl.get("/update-cart/7/double")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decode(t, w)["status"])

	cart := data(t, cl.get("/cart"))
	assert.Equal(t, "30", cart["total"])
}
