package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rifat2413010/e-commerce-bloom/controllers/cart"
	checkoutControllers "github.com/rifat2413010/e-commerce-bloom/controllers/checkout"
	orderControllers "github.com/rifat2413010/e-commerce-bloom/controllers/order"
	productcontroller "github.com/rifat2413010/e-commerce-bloom/controllers/product"
	settingsController "github.com/rifat2413010/e-commerce-bloom/controllers/settings"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
)

// SetupStorefrontRoutes registers the public "/api/*" endpoints.
func SetupStorefrontRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	// ─────────── Catalog ───────────
	api.GET("/products", productcontroller.GetProducts(d.Catalog))
	api.GET("/products/:id", productcontroller.GetProduct(d.Catalog))
	api.GET("/categories", productcontroller.GetCategories(d.Catalog))
	api.GET("/categories/:id/products", productcontroller.GetCategoryProducts(d.Catalog))
	api.GET("/content", productcontroller.GetContent(d.Catalog))
	api.GET("/settings", settingsController.GetSiteSettings(d.Settings))

	// ─────────── Cart (session required) ───────────
	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.RequireSession(d.Sessions))
	{
		cartGroup.GET("", cartControllers.GetCart(d.Carts))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Carts))
		cartGroup.GET("/count", cartControllers.GetCount(d.Carts))
		cartGroup.GET("/contains/:product_id", cartControllers.Contains(d.Carts))
		cartGroup.POST("/items", cartControllers.AddItem(d.Carts))
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateItem(d.Carts))
		cartGroup.DELETE("/items/:product_id", cartControllers.RemoveItem(d.Carts))
	}

	// ─────────── Checkout ───────────
	limited := middleware.RateLimit(d.Limiter)
	api.GET("/checkout/summary", middleware.RequireSession(d.Sessions), checkoutControllers.GetSummary(d.Checkout))
	api.POST("/checkout", limited, middleware.RequireSession(d.Sessions), checkoutControllers.PlaceOrder(d.Checkout))
	api.POST("/quick-order", limited, checkoutControllers.QuickOrder(d.Checkout))

	// ─────────── Confirmation ───────────
	api.POST("/order-success", orderControllers.OrderSuccess())
	api.GET("/orders/:id/number", orderControllers.GetOrderNumber(d.Gateway))
}
