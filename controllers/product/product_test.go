package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/internal/dbtest"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	r        *gin.Engine
	category models.Category
	honey    models.Product
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)

	category := models.Category{Name: "মধু ও ঘি", NameEn: strPtr("Honey & Ghee"), IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	honey := models.Product{Name: "মধু", NameEn: strPtr("Honey"), Price: decimal.NewFromInt(500), Stock: 5, Unit: "jar", CategoryID: &category.ID, IsOffer: true, IsActive: true}
	require.NoError(t, db.Create(&honey).Error)
	ghee := models.Product{Name: "ঘি", Price: decimal.NewFromInt(900), Stock: 0, Unit: "jar", IsBestSeller: true, IsActive: true}
	require.NoError(t, db.Create(&ghee).Error)
	require.NoError(t, db.Create(&models.ContentBlock{Name: "Hero", Slug: "hero", Location: strPtr("home"), IsActive: true}).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cat := catalog.NewRepository(db)
	r.GET("/api/products", GetProducts(cat))
	r.GET("/api/products/:id", GetProduct(cat))
	r.GET("/api/categories", GetCategories(cat))
	r.GET("/api/categories/:id/products", GetCategoryProducts(cat))
	r.GET("/api/content", GetContent(cat))
	return fixture{r: r, category: category, honey: honey}
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetProducts(t *testing.T) {
	f := setup(t)

	w := get(f.r, "/api/products?lang=en")
	require.Equal(t, http.StatusOK, w.Code)
	var products []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	names := map[string]bool{}
	for _, p := range products {
		names[p.DisplayName] = true
	}
	// ghee has no English name and falls back to Bangla
	assert.True(t, names["Honey"])
	assert.True(t, names["ঘি"])

	w = get(f.r, "/api/products?offers=true")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, f.honey.ID, products[0].ID)
	assert.Equal(t, "মধু", products[0].DisplayName)

	assert.Equal(t, http.StatusBadRequest, get(f.r, "/api/products?offers=maybe").Code)
	assert.Equal(t, http.StatusBadRequest, get(f.r, "/api/products?limit=-1").Code)
}

func TestGetProduct(t *testing.T) {
	f := setup(t)

	w := get(f.r, "/api/products/"+f.honey.ID)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Product catalog.Product `json:"product"`
		InStock bool            `json:"in_stock"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.InStock)
	assert.True(t, body.Product.Price.Equal(decimal.NewFromInt(500)))

	w = get(f.r, "/api/products/not-a-uuid?lang=en")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestCategories(t *testing.T) {
	f := setup(t)

	w := get(f.r, "/api/categories?lang=en")
	require.Equal(t, http.StatusOK, w.Code)
	var categories []catalog.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Honey & Ghee", categories[0].DisplayName)

	w = get(f.r, "/api/categories/"+f.category.ID+"/products")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Category catalog.Category  `json:"category"`
		Products []catalog.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, f.honey.ID, body.Products[0].ID)

	assert.Equal(t, http.StatusNotFound, get(f.r, "/api/categories/nope/products").Code)
}

func TestGetContent(t *testing.T) {
	f := setup(t)

	w := get(f.r, "/api/content?location=home")
	require.Equal(t, http.StatusOK, w.Code)
	var blocks []catalog.ContentBlock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Equal(t, "hero", blocks[0].Slug)

	w = get(f.r, "/api/content?location=footer")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blocks))
	assert.Empty(t, blocks)
}
