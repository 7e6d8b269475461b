package checkoutControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/checkout"
	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/i18n"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
)

type CheckoutService interface {
	Quote(ctx context.Context, sessionID string) (checkout.Quote, error)
	Submit(ctx context.Context, sessionID string, info checkout.CustomerInfo, idempotencyKey string) (*confirmation.State, error)
	QuickOrder(ctx context.Context, form checkout.QuickOrderForm, idempotencyKey string) (*confirmation.State, error)
}

type orderPlacedResponse struct {
	OrderNumber string              `json:"order_number"`
	State       *confirmation.State `json:"state"`
	Page        confirmation.Page   `json:"page"`
}

// GET /api/checkout/summary
func GetSummary(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quote, err := svc.Quote(c.Request.Context(), middleware.SessionID(c))
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeEmptyCart(c)
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to price cart", err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// POST /api/checkout
func PlaceOrder(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var info checkout.CustomerInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		state, err := svc.Submit(c.Request.Context(), middleware.SessionID(c), info, c.GetHeader("Idempotency-Key"))
		if err != nil {
			writeSubmitError(c, err)
			return
		}
		c.JSON(http.StatusCreated, orderPlacedResponse{
			OrderNumber: state.OrderNumber,
			State:       state,
			Page:        confirmation.Build(state, respond.Lang(c)),
		})
	}
}

// POST /api/quick-order
func QuickOrder(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.QuickOrderForm
		if err := c.ShouldBindJSON(&form); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		state, err := svc.QuickOrder(c.Request.Context(), form, c.GetHeader("Idempotency-Key"))
		if err != nil {
			writeSubmitError(c, err)
			return
		}
		c.JSON(http.StatusCreated, orderPlacedResponse{
			OrderNumber: state.OrderNumber,
			State:       state,
			Page:        confirmation.Build(state, respond.Lang(c)),
		})
	}
}

func writeSubmitError(c *gin.Context, err error) {
	lang := respond.Lang(c)

	var vErr *checkout.ValidationError
	var subErr *checkout.SubmissionError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeEmptyCart(c)
	case errors.As(err, &vErr):
		msg := i18n.T(lang, i18n.MsgRequiredFields)
		for _, f := range vErr.Fields {
			if f == "delivery_area" {
				msg = i18n.T(lang, i18n.MsgInvalidDeliveryArea)
			}
		}
		respond.ErrorWithDetails(c, http.StatusUnprocessableEntity, "validation_failed", msg, gin.H{"fields": vErr.Fields})
	case errors.Is(err, checkout.ErrSubmissionInProgress):
		respond.Error(c, http.StatusConflict, "submission_in_progress", i18n.T(lang, i18n.MsgSubmissionInProgress))
	case errors.Is(err, checkout.ErrProductNotFound):
		respond.NotFound(c, i18n.T(lang, i18n.MsgProductNotFound))
	case errors.Is(err, checkout.ErrOutOfStock):
		respond.Error(c, http.StatusConflict, "out_of_stock", i18n.T(lang, i18n.MsgOutOfStock))
	case errors.As(err, &subErr) && rejectedByGateway(subErr):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_order", subErr.Message)
	case errors.As(err, &subErr):
		msg := subErr.Message
		if msg == "" {
			msg = i18n.T(lang, i18n.MsgOrderFailed)
		}
		respond.Internal(c, msg, err)
	default:
		respond.Internal(c, i18n.T(lang, i18n.MsgOrderFailed), err)
	}
}

// writeEmptyCart sends the buyer back to the cart view.
func writeEmptyCart(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusConflict, models.ErrorResponse{
		Error:    "empty_cart",
		Message:  i18n.T(respond.Lang(c), i18n.MsgEmptyCart),
		Redirect: "/cart",
	})
}

// rejectedByGateway reports whether the gateway refused the order as invalid,
// as opposed to failing to store it.
func rejectedByGateway(subErr *checkout.SubmissionError) bool {
	var gwErr *orders.GatewayError
	return errors.As(subErr.Err, &gwErr) && gwErr.Err == nil && gwErr.Message != ""
}
