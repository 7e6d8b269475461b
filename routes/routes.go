package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/auth"
	adminController "github.com/rifat2413010/e-commerce-bloom/controllers/admin"
	cartControllers "github.com/rifat2413010/e-commerce-bloom/controllers/cart"
	checkoutControllers "github.com/rifat2413010/e-commerce-bloom/controllers/checkout"
	productcontroller "github.com/rifat2413010/e-commerce-bloom/controllers/product"
	settingsController "github.com/rifat2413010/e-commerce-bloom/controllers/settings"
	"github.com/rifat2413010/e-commerce-bloom/events"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
	"github.com/rifat2413010/e-commerce-bloom/orders"
)

// Deps bundles what the route groups hand to the controllers.
type Deps struct {
	Catalog     productcontroller.Catalog
	Carts       cartControllers.CartService
	Checkout    checkoutControllers.CheckoutService
	Gateway     orders.Gateway
	Orders      adminController.OrderReader
	Settings    settingsController.Store
	Sessions    *auth.SessionIssuer
	Hub         *events.Hub
	Limiter     *middleware.RateLimiter
	AdminAPIKey string
}

// SetupRoutes is the single entry point that wires up the storefront, RPC and admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Anonymous cart sessions
	SetupAuthRoutes(r, d)

	// Catalog, cart, checkout, confirmation
	SetupStorefrontRoutes(r, d)

	// Order-creation gateway
	SetupOrderRoutes(r, d)

	// Back office (API-key protected)
	SetupAdminRoutes(r, d)
}
