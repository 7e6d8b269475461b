package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/rifat2413010/e-commerce-bloom/controllers/order"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
)

// SetupOrderRoutes exposes the order-creation gateway as an RPC endpoint.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	rpc := r.Group("/rpc")
	rpc.Use(middleware.RateLimit(d.Limiter))
	{
		rpc.POST("/create_order_with_items", orderControllers.CreateOrderWithItems(d.Gateway))
	}
}
