package adminController

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
)

// OrderReader is the back-office read side over orders and customers.
type OrderReader interface {
	ListOrders(ctx context.Context, f orders.OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListCustomers(ctx context.Context, search string) ([]orders.CustomerSummary, error)
	OrdersByPhone(ctx context.Context, phone string) ([]models.Order, error)
}

// GET /admin/orders?status=&search=&limit=&offset=
func GetAllOrders(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := orderFilter(c)
		if !ok {
			return
		}
		list, err := repo.ListOrders(c.Request.Context(), filter)
		if err != nil {
			respond.Internal(c, "Failed to fetch orders", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /admin/orders/:id
func GetOrder(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := repo.GetOrder(c.Request.Context(), c.Param("id"))
		if errors.Is(err, orders.ErrOrderNotFound) {
			respond.NotFound(c, "Order not found")
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to fetch order", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/customers?search=
func GetAllCustomers(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := repo.ListCustomers(c.Request.Context(), c.Query("search"))
		if err != nil {
			respond.Internal(c, "Failed to fetch customers", err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GET /admin/customers/:phone/orders
func GetCustomerOrders(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := repo.OrdersByPhone(c.Request.Context(), c.Param("phone"))
		if err != nil {
			respond.Internal(c, "Failed to fetch customer orders", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func orderFilter(c *gin.Context) (orders.OrderFilter, bool) {
	f := orders.OrderFilter{Search: c.Query("search")}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			respond.BadRequest(c, "Invalid status")
			return f, false
		}
		f.Status = status
	}
	for name, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respond.BadRequest(c, "Invalid "+name)
			return f, false
		}
		*dst = v
	}
	return f, true
}
