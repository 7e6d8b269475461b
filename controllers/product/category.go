package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
)

// GET /api/categories
func GetCategories(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := cat.ListCategories(c.Request.Context())
		if err != nil {
			respond.Internal(c, "Failed to fetch categories", err)
			return
		}
		lang := respond.Lang(c)
		for i := range categories {
			categories[i] = categories[i].Localized(lang)
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /api/categories/:id/products
func GetCategoryProducts(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := cat.GetCategory(c.Request.Context(), c.Param("id"))
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respond.NotFound(c, "Category not found")
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to fetch category", err)
			return
		}

		filter, ok := parseFilter(c)
		if !ok {
			return
		}
		filter.CategoryID = category.ID
		products, err := cat.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respond.Internal(c, "Failed to fetch products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"category": category.Localized(respond.Lang(c)),
			"products": localizeProducts(products, c),
		})
	}
}
