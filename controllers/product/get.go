package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/i18n"
)

// GET /api/products/:id
func GetProduct(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := respond.Lang(c)
		product, err := cat.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrProductNotFound) {
			respond.NotFound(c, i18n.T(lang, i18n.MsgProductNotFound))
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to fetch product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product":  product.Localized(lang),
			"in_stock": product.InStock(),
		})
	}
}

// GET /api/content?location=
func GetContent(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks, err := cat.ListContent(c.Request.Context(), c.Query("location"))
		if err != nil {
			respond.Internal(c, "Failed to fetch content", err)
			return
		}
		c.JSON(http.StatusOK, blocks)
	}
}
