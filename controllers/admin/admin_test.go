package adminController

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/internal/dbtest"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func placeOrder(t *testing.T, gw *orders.GormGateway, name, phone string, price int64) string {
	t.Helper()
	id, err := gw.CreateOrder(context.Background(), orders.CreateOrderParams{
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: "House 1",
		CustomerCity:    "Dhaka",
		PaymentMethod:   models.PaymentMethodCOD,
		DeliveryCharge:  decimal.NewFromInt(50),
		Items: []orders.LineItem{
			{ProductName: "Honey", UnitPrice: decimal.NewFromInt(price), Quantity: 1},
		},
	})
	require.NoError(t, err)
	return id
}

func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db := dbtest.Open(t)
	gw := orders.NewGormGateway(db, nil, nil)
	first := placeOrder(t, gw, "Rahim", "01711111111", 500)
	placeOrder(t, gw, "Rahim", "01711111111", 300)
	placeOrder(t, gw, "Karim", "01822222222", 1000)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", first).Update("status", models.OrderStatusShipped).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	repo := orders.NewRepository(db)
	r.GET("/admin/orders", GetAllOrders(repo))
	r.GET("/admin/orders/export", ExportOrdersToExcel(repo))
	r.GET("/admin/orders/:id", GetOrder(repo))
	r.GET("/admin/customers", GetAllCustomers(repo))
	r.GET("/admin/customers/export", ExportCustomersToExcel(repo))
	r.GET("/admin/customers/:phone/orders", GetCustomerOrders(repo))
	return r, first
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetAllOrders_Filters(t *testing.T) {
	r, first := setup(t)

	var list []models.Order
	w := get(r, "/admin/orders")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	w = get(r, "/admin/orders?status=SHIPPED")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0].ID)

	w = get(r, "/admin/orders?search=karim")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "01822222222", list[0].CustomerPhone)

	assert.Equal(t, http.StatusBadRequest, get(r, "/admin/orders?status=lost").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/admin/orders?limit=x").Code)
}

func TestGetOrder(t *testing.T) {
	r, first := setup(t)

	w := get(r, "/admin/orders/"+first)
	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.Len(t, order.Items, 1)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(550)))

	assert.Equal(t, http.StatusNotFound, get(r, "/admin/orders/00000000-0000-0000-0000-000000000000").Code)
}

func TestCustomers(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/admin/customers?search=0171")
	require.Equal(t, http.StatusOK, w.Code)
	var customers []orders.CustomerSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.EqualValues(t, 2, customers[0].OrderCount)
	assert.True(t, customers[0].TotalSpent.Equal(decimal.NewFromInt(900)))

	w = get(r, "/admin/customers/01711111111/orders")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestExportOrdersToExcel(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/admin/orders/export?status=pending")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.xlsx")

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet := file.Sheet["Orders"]
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 3) // header + two pending orders
	assert.Equal(t, "Order Number", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "pending", sheet.Rows[1].Cells[7].Value)
}

func TestExportCustomersToExcel(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/admin/customers/export")
	require.Equal(t, http.StatusOK, w.Code)

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet := file.Sheet["Customers"]
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Phone", sheet.Rows[0].Cells[1].Value)
}
