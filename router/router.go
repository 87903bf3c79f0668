package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodcourt/controllers"
	"github.com/yeremiapane/foodcourt/metrics"
	"github.com/yeremiapane/foodcourt/middlewares"
	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/services"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

// Deps is everything the HTTP surface needs. Nil limiters are created with
// defaults; a zero RateLimitPerSecond turns the global limiter off.
type Deps struct {
	DB             *gorm.DB
	Sessions       session.Store
	SessionOptions session.Options
	Tokens         *utils.TokenIssuer

	CORSOrigin         string
	MediaDir           string
	RateLimitPerSecond int
	RateLimiter        *middlewares.RateLimiter
	AuthLimiter        *middlewares.StrictLimiter
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.LoggerMiddleware(), middlewares.MetricsMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if d.MediaDir != "" {
		r.Static("/media", d.MediaDir)
	}

	if d.RateLimiter == nil && d.RateLimitPerSecond > 0 {
		d.RateLimiter = middlewares.NewRateLimiter(d.RateLimitPerSecond, time.Second)
	}
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}
	if d.AuthLimiter == nil {
		d.AuthLimiter = middlewares.NewStrictRateLimiter(time.Minute, 5)
	}

	r.Use(
		middlewares.CORSMiddlewares(d.CORSOrigin),
		middlewares.SecurityHeaders(),
		session.Middleware(d.Sessions, d.SessionOptions),
		middlewares.AuthMiddleware(d.Tokens),
	)

	catalogService := services.NewCatalogService(d.DB)
	checkoutService := services.NewCheckoutService(catalogService)
	orderService := services.NewOrderService(d.DB)
	authService := services.NewAuthService(d.DB)

	catalogCtrl := controllers.NewCatalogController(catalogService)
	cartCtrl := controllers.NewCartController(checkoutService)
	orderCtrl := controllers.NewOrderController(checkoutService, orderService)
	userCtrl := controllers.NewUserController(authService, d.Tokens)
	adminCtrl := controllers.NewAdminController(orderService, catalogService)

	// Catalog
	r.GET("/", catalogCtrl.Home)
	r.GET("/categories", catalogCtrl.Categories)
	r.GET("/food/:id", catalogCtrl.FoodDetail)

	// Cart
	r.Match([]string{http.MethodGet, http.MethodPost}, "/add-to-cart/:food_id", cartCtrl.AddToCart)
	r.GET("/cart", cartCtrl.ViewCart)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/remove/:food_id", cartCtrl.RemoveFromCart)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/update-cart/:food_id/:action", cartCtrl.UpdateQuantity)

	// Checkout and orders
	r.GET("/checkout", orderCtrl.CheckoutPage)
	r.POST("/place-order", orderCtrl.PlaceOrder)
	r.GET("/place-order", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})
	r.GET("/customer-dashboard", middlewares.RequireLogin(), orderCtrl.CustomerDashboard)

	// Auth
	r.POST("/signup", d.AuthLimiter.Handler(), userCtrl.Signup)
	r.POST("/login", d.AuthLimiter.Handler(), userCtrl.Login)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/logout", userCtrl.Logout)

	// Fulfillment
	admin := r.Group("/admin")
	admin.Use(middlewares.RoleCheck(models.RoleAdmin))
	{
		admin.PATCH("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)
		admin.PATCH("/foods/:food_id", adminCtrl.UpdateFood)
	}

	return r
}
