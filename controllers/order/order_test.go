package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/internal/dbtest"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router(gw orders.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/rpc/create_order_with_items", CreateOrderWithItems(gw))
	r.GET("/api/orders/:id/number", GetOrderNumber(gw))
	r.POST("/api/order-success", OrderSuccess())
	return r
}

func send(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const rpcBody = `{
	"_customer_name": "Rahim",
	"_customer_phone": "01700000000",
	"_customer_email": null,
	"_customer_address": "House 1",
	"_customer_city": "Dhaka",
	"_customer_district": null,
	"_payment_method": "cod",
	"_notes": null,
	"_delivery_charge": 50,
	"_items": [{"product_id": "legacy-7", "product_name": "Honey 500g", "product_image": null, "unit_price": 500, "quantity": 2, "selected_size": null}]
}`

func TestCreateOrderWithItems_AndReadBack(t *testing.T) {
	db := dbtest.Open(t)
	r := router(orders.NewGormGateway(db, nil, nil))

	w := send(r, http.MethodPost, "/rpc/create_order_with_items", rpcBody, map[string]string{"Idempotency-Key": "k1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var orderID string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderID))

	// replay with the same key
	w = send(r, http.MethodPost, "/rpc/create_order_with_items", rpcBody, map[string]string{"Idempotency-Key": "k1"})
	require.Equal(t, http.StatusOK, w.Code)
	var replayID string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replayID))
	assert.Equal(t, orderID, replayID)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Take(&item).Error)
	assert.Nil(t, item.ProductID)

	w = send(r, http.MethodGet, "/api/orders/"+orderID+"/number", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^ORD-\d{6}-[0-9A-F]{6}$`, resp["order_number"])

	w = send(r, http.MethodGet, "/api/orders/3f0c9a44-2a0e-4f53-9d55-0d3c7e1a9b10/number", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderWithItems_BadRequests(t *testing.T) {
	r := router(orders.NewGormGateway(dbtest.Open(t), nil, nil))

	w := send(r, http.MethodPost, "/rpc/create_order_with_items", `{"_customer_name":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/rpc/create_order_with_items", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	card := `{"_customer_name":"R","_customer_phone":"1","_customer_address":"A","_payment_method":"card",
		"_items":[{"product_name":"x","unit_price":1,"quantity":1}]}`
	w = send(r, http.MethodPost, "/rpc/create_order_with_items", card, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cash on delivery")
}

type failingGateway struct{}

func (failingGateway) CreateOrder(context.Context, orders.CreateOrderParams) (string, error) {
	return "", &orders.GatewayError{Message: "order could not be saved, please try again", Err: assert.AnError}
}

func (failingGateway) OrderNumber(context.Context, string) (string, error) {
	return "", assert.AnError
}

func TestCreateOrderWithItems_GatewayFailure(t *testing.T) {
	r := router(failingGateway{})

	w := send(r, http.MethodPost, "/rpc/create_order_with_items", rpcBody, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "order could not be saved")

	w = send(r, http.MethodGet, "/api/orders/x/number", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOrderSuccess(t *testing.T) {
	r := router(failingGateway{})

	w := send(r, http.MethodPost, "/api/order-success?lang=en", `{"orderNumber":"ORD-250101-A1B2C3","customer":{"name":"Rahim","phone":"017","address":"House 1","city":"Dhaka"}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page confirmation.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.True(t, page.HasDetails)
	assert.Equal(t, "House 1, Dhaka", page.AddressLine)

	for _, body := range []string{"", "   ", "{bad json"} {
		w = send(r, http.MethodPost, "/api/order-success", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.False(t, page.HasDetails)
	}
}
