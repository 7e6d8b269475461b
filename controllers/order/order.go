package orderControllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/orders"
)

// POST /rpc/create_order_with_items
//
// Accepts the _customer_* / _items argument set and answers with the new order
// id as a JSON string.
func CreateOrderWithItems(gw orders.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orders.RPCRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		params, err := req.ToParams()
		if err != nil {
			respond.BadRequest(c, err.Error())
			return
		}
		params.IdempotencyKey = c.GetHeader("Idempotency-Key")

		orderID, err := gw.CreateOrder(c.Request.Context(), params)
		if err != nil {
			var gwErr *orders.GatewayError
			if errors.As(err, &gwErr) {
				if gwErr.Err == nil {
					respond.Error(c, http.StatusBadRequest, "invalid_order", gwErr.Message)
					return
				}
				respond.Internal(c, gwErr.Message, err)
				return
			}
			respond.Internal(c, "Failed to create order", err)
			return
		}
		c.JSON(http.StatusOK, orderID)
	}
}

// GET /api/orders/:id/number
func GetOrderNumber(gw orders.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := gw.OrderNumber(c.Request.Context(), c.Param("id"))
		if errors.Is(err, orders.ErrOrderNotFound) {
			respond.NotFound(c, "Order not found")
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to read order number", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_number": number})
	}
}

// POST /api/order-success
//
// Renders the confirmation page from the navigation state the client carries.
// An empty or unreadable body yields the page without details.
func OrderSuccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		var state *confirmation.State
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
		if err == nil && strings.TrimSpace(string(body)) != "" {
			var s confirmation.State
			if err := json.Unmarshal(body, &s); err == nil {
				state = &s
			}
		}
		c.JSON(http.StatusOK, confirmation.Build(state, respond.Lang(c)))
	}
}
