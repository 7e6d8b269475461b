package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type ProductFilter struct {
	Search      string
	CategoryID  string
	Offers      bool
	BestSellers bool
	Limit       int
	Offset      int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns active products, newest first.
func (r *Repository) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(name_en, '')) LIKE ?", like, like)
	}
	if f.CategoryID != "" {
		if _, err := uuid.Parse(f.CategoryID); err != nil {
			return []Product{}, nil
		}
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Offers {
		q = q.Where("is_offer = ?", true)
	}
	if f.BestSellers {
		q = q.Where("is_best_seller = ?", true)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var rows []models.Product
	if err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p, err := ProductFromRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProduct returns one active product.
func (r *Repository) GetProduct(ctx context.Context, id string) (Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrProductNotFound
	}
	var row models.Product
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return ProductFromRow(row)
}

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		c, err := CategoryFromRow(row)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id string) (Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Category{}, ErrCategoryNotFound
	}
	var row models.Category
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return CategoryFromRow(row)
}

// ListContent returns active content blocks, optionally only those at location.
func (r *Repository) ListContent(ctx context.Context, location string) ([]ContentBlock, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if location != "" {
		q = q.Where("location = ?", location)
	}
	var rows []models.ContentBlock
	if err := q.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	blocks := make([]ContentBlock, 0, len(rows))
	for _, row := range rows {
		b, err := ContentBlockFromRow(row)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
