package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/rifat2413010/e-commerce-bloom/controllers/admin"
	orderControllers "github.com/rifat2413010/e-commerce-bloom/controllers/order"
	settingsController "github.com/rifat2413010/e-commerce-bloom/controllers/settings"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminController.GetAllOrders(d.Orders))
			orderAdmin.GET("/export", adminController.ExportOrdersToExcel(d.Orders))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler(d.Hub))
			orderAdmin.GET("/:id", adminController.GetOrder(d.Orders))
		}

		// ─────────── Customers ───────────
		customerAdmin := adminGroup.Group("/customers")
		{
			customerAdmin.GET("", adminController.GetAllCustomers(d.Orders))
			customerAdmin.GET("/export", adminController.ExportCustomersToExcel(d.Orders))
			customerAdmin.GET("/:phone/orders", adminController.GetCustomerOrders(d.Orders))
		}

		// ─────────── Site settings ───────────
		adminGroup.GET("/settings", settingsController.GetAllSettings(d.Settings))
		adminGroup.PUT("/settings", settingsController.UpdateSettings(d.Settings))
	}
}
