package orderControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/events"
)

// GET /admin/orders/ws
//
// Streams {"type":"order.created","data":{...}} for every new order.
func OrderWebSocketHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeHTTP(c.Writer, c.Request)
	}
}
