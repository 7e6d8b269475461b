package cartControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/cart"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/i18n"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
	"github.com/shopspring/decimal"
)

// CartService is the session cart API the handlers need.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Add(ctx context.Context, sessionID, productID string, quantity int, size string) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, size string) (*cart.Cart, error)
	Remove(ctx context.Context, sessionID, productID, size string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type AddItemInput struct {
	ProductID    string `json:"product_id" binding:"required"`
	Quantity     *int   `json:"quantity"`
	SelectedSize string `json:"selected_size"`
}

type UpdateItemInput struct {
	Quantity     *int   `json:"quantity" binding:"required"`
	SelectedSize string `json:"selected_size"`
}

type cartResponse struct {
	Items     []cart.Item     `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

func toResponse(c *cart.Cart) cartResponse {
	return cartResponse{Items: c.Items, ItemCount: c.ItemCount(), Total: c.Total()}
}

// GET /api/cart
func GetCart(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := svc.Get(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respond.Internal(c, "Failed to load cart", err)
			return
		}
		c.JSON(http.StatusOK, toResponse(sc))
	}
}

// POST /api/cart/items
func AddItem(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}

		sc, err := svc.Add(c.Request.Context(), middleware.SessionID(c), input.ProductID, quantity, input.SelectedSize)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(sc))
	}
}

// PUT /api/cart/items/:product_id
func UpdateItem(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		sc, err := svc.UpdateQuantity(c.Request.Context(), middleware.SessionID(c), c.Param("product_id"), *input.Quantity, input.SelectedSize)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(sc))
	}
}

// DELETE /api/cart/items/:product_id?size=
func RemoveItem(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := svc.Remove(c.Request.Context(), middleware.SessionID(c), c.Param("product_id"), c.Query("size"))
		if err != nil {
			respond.Internal(c, "Failed to remove item", err)
			return
		}
		c.JSON(http.StatusOK, toResponse(sc))
	}
}

// DELETE /api/cart
func ClearCart(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
			respond.Internal(c, "Failed to clear cart", err)
			return
		}
		c.JSON(http.StatusOK, toResponse(cart.New()))
	}
}

// GET /api/cart/count
func GetCount(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := svc.Get(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respond.Internal(c, "Failed to load cart", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": sc.ItemCount()})
	}
}

// GET /api/cart/contains/:product_id
func Contains(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, err := svc.Get(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respond.Internal(c, "Failed to load cart", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"in_cart": sc.Contains(c.Param("product_id"))})
	}
}

func writeCartError(c *gin.Context, err error) {
	lang := respond.Lang(c)
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		respond.NotFound(c, i18n.T(lang, i18n.MsgProductNotFound))
	case errors.Is(err, cart.ErrOutOfStock):
		respond.Error(c, http.StatusConflict, "out_of_stock", i18n.T(lang, i18n.MsgOutOfStock))
	default:
		respond.Internal(c, "Failed to update cart", err)
	}
}
