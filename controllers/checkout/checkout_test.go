package checkoutControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/checkout"
	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err     error
	gotKey  string
	gotInfo checkout.CustomerInfo
}

func (s *stubService) Quote(context.Context, string) (checkout.Quote, error) {
	return checkout.Quote{Subtotal: decimal.NewFromInt(1000), DeliveryCharge: decimal.NewFromInt(50), Total: decimal.NewFromInt(1050), ItemCount: 2}, s.err
}

func (s *stubService) Submit(_ context.Context, _ string, info checkout.CustomerInfo, key string) (*confirmation.State, error) {
	s.gotInfo, s.gotKey = info, key
	if s.err != nil {
		return nil, s.err
	}
	return &confirmation.State{OrderNumber: "ORD-250101-A1B2C3", Customer: &confirmation.Customer{Name: info.Name}}, nil
}

func (s *stubService) QuickOrder(_ context.Context, _ checkout.QuickOrderForm, key string) (*confirmation.State, error) {
	s.gotKey = key
	if s.err != nil {
		return nil, s.err
	}
	return &confirmation.State{OrderNumber: "ORD-250101-FFFFFF"}, nil
}

func router(svc CheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/checkout/summary", GetSummary(svc))
	r.POST("/api/checkout", PlaceOrder(svc))
	r.POST("/api/quick-order", QuickOrder(svc))
	return r
}

func post(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrder_Success(t *testing.T) {
	svc := &stubService{}
	w := post(router(svc), "/api/checkout?lang=en", `{"name":"Rahim","phone":"017","address":"A","city":"Dhaka"}`,
		map[string]string{"Idempotency-Key": "abc"})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp orderPlacedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-250101-A1B2C3", resp.OrderNumber)
	assert.True(t, resp.Page.HasDetails)
	assert.Equal(t, "Order placed successfully!", resp.Page.Title)
	assert.Equal(t, "abc", svc.gotKey)
	assert.Equal(t, "Dhaka", svc.gotInfo.City)
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusConflict, "empty_cart"},
		{"validation", &checkout.ValidationError{Fields: []string{"city"}}, http.StatusUnprocessableEntity, "validation_failed"},
		{"in flight", checkout.ErrSubmissionInProgress, http.StatusConflict, "submission_in_progress"},
		{"gateway", &checkout.SubmissionError{Message: "order could not be saved, please try again"}, http.StatusInternalServerError, "internal_error"},
		{"gateway stored nothing", &checkout.SubmissionError{
			Message: "order could not be saved, please try again",
			Err:     &orders.GatewayError{Message: "order could not be saved, please try again", Err: errors.New("deadlock")},
		}, http.StatusInternalServerError, "internal_error"},
		{"gateway rejected", &checkout.SubmissionError{
			Message: "customer phone is required",
			Err:     &orders.GatewayError{Message: "customer phone is required"},
		}, http.StatusUnprocessableEntity, "invalid_order"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router(&stubService{err: tt.err}), "/api/checkout?lang=en", `{}`, nil)
			assert.Equal(t, tt.status, w.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
		})
	}
}

func TestPlaceOrder_EmptyCartRedirects(t *testing.T) {
	w := post(router(&stubService{err: checkout.ErrEmptyCart}), "/api/checkout", `{}`, nil)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/cart", resp.Redirect)
}

func TestPlaceOrder_GatewayMessageShownVerbatim(t *testing.T) {
	w := post(router(&stubService{err: &checkout.SubmissionError{Message: "customer phone is required"}}), "/api/checkout", `{}`, nil)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "customer phone is required", resp.Message)

	w = post(router(&stubService{err: &checkout.SubmissionError{Err: errors.New("timeout")}}), "/api/checkout?lang=en", `{}`, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to place the order. Please try again.", resp.Message)
}

func TestQuickOrderAndSummary(t *testing.T) {
	svc := &stubService{}
	r := router(svc)

	w := post(r, "/api/quick-order", `{"product_id":"p","quantity":1,"name":"K","phone":"1","address":"A","delivery_area":"inside"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ORD-250101-FFFFFF")

	w = post(router(&stubService{err: checkout.ErrOutOfStock}), "/api/quick-order", `{}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var q checkout.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1050)))
}

func TestGetSummary_EmptyCartRedirects(t *testing.T) {
	r := router(&stubService{err: checkout.ErrEmptyCart})

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/summary?lang=en", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_cart", resp.Error)
	assert.Equal(t, "/cart", resp.Redirect)
	assert.NotContains(t, rec.Body.String(), "delivery_charge")
}

func TestPlaceOrder_GatewayRejectionIsUnprocessable(t *testing.T) {
	err := &checkout.SubmissionError{
		Message: "only cash on delivery is supported",
		Err:     &orders.GatewayError{Message: "only cash on delivery is supported"},
	}
	w := post(router(&stubService{err: err}), "/api/checkout", `{}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "only cash on delivery is supported", resp.Message)
}
