package productcontroller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
)

// Catalog is the read side the storefront browses.
type Catalog interface {
	ListProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	GetCategory(ctx context.Context, id string) (catalog.Category, error)
	ListContent(ctx context.Context, location string) ([]catalog.ContentBlock, error)
}

// GET /api/products?search=&category_id=&offers=&best_sellers=&limit=&offset=
func GetProducts(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := parseFilter(c)
		if !ok {
			return
		}
		filter.CategoryID = c.Query("category_id")

		products, err := cat.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respond.Internal(c, "Failed to fetch products", err)
			return
		}
		c.JSON(http.StatusOK, localizeProducts(products, c))
	}
}

func parseFilter(c *gin.Context) (catalog.ProductFilter, bool) {
	f := catalog.ProductFilter{Search: c.Query("search")}

	for name, dst := range map[string]*bool{"offers": &f.Offers, "best_sellers": &f.BestSellers} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.BadRequest(c, "Invalid "+name)
			return f, false
		}
		*dst = v
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

func localizeProducts(products []catalog.Product, c *gin.Context) []catalog.Product {
	lang := respond.Lang(c)
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = p.Localized(lang)
	}
	return out
}
