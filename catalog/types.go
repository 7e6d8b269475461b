// Package catalog is the read side of products, categories and content blocks.
// Rows are mapped to typed values explicitly; a row that cannot be mapped is an error.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rifat2413010/e-commerce-bloom/i18n"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/shopspring/decimal"
)

var (
	ErrMalformedRow     = errors.New("malformed catalog row")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Product struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	NameEn         string           `json:"name_en,omitempty"`
	DisplayName    string           `json:"display_name"`
	Description    string           `json:"description,omitempty"`
	DescriptionEn  string           `json:"description_en,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"original_price,omitempty"`
	Image          string           `json:"image,omitempty"`
	Images         []string         `json:"images"`
	CategoryID     *string          `json:"category_id,omitempty"`
	Stock          int              `json:"stock"`
	Unit           string           `json:"unit"`
	IsOffer        bool             `json:"is_offer"`
	OfferPercent   *int             `json:"offer_percent,omitempty"`
	IsBestSeller   bool             `json:"is_best_seller"`
	SEOTitle       string           `json:"seo_title,omitempty"`
	SEODescription string           `json:"seo_description,omitempty"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool { return p.Stock > 0 }

// Localized fills DisplayName for lang, falling back to the Bangla name.
func (p Product) Localized(lang i18n.Lang) Product {
	p.DisplayName = pick(lang, p.Name, p.NameEn)
	return p
}

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	NameEn      string  `json:"name_en,omitempty"`
	DisplayName string  `json:"display_name"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	SortOrder   int     `json:"sort_order"`
}

func (c Category) Localized(lang i18n.Lang) Category {
	c.DisplayName = pick(lang, c.Name, c.NameEn)
	return c
}

type ContentBlock struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Location  string    `json:"location,omitempty"`
	SortOrder int       `json:"sort_order"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductFromRow maps a products row. Missing id/name/unit and negative
// price or stock are rejected rather than defaulted.
func ProductFromRow(row models.Product) (Product, error) {
	switch {
	case row.ID == "":
		return Product{}, fmt.Errorf("%w: product without id", ErrMalformedRow)
	case strings.TrimSpace(row.Name) == "":
		return Product{}, fmt.Errorf("%w: product %s has no name", ErrMalformedRow, row.ID)
	case row.Price.IsNegative():
		return Product{}, fmt.Errorf("%w: product %s has negative price", ErrMalformedRow, row.ID)
	case row.Stock < 0:
		return Product{}, fmt.Errorf("%w: product %s has negative stock", ErrMalformedRow, row.ID)
	case row.Unit == "":
		return Product{}, fmt.Errorf("%w: product %s has no unit", ErrMalformedRow, row.ID)
	}

	p := Product{
		ID:             row.ID,
		Name:           row.Name,
		NameEn:         deref(row.NameEn),
		Description:    deref(row.Description),
		DescriptionEn:  deref(row.DescriptionEn),
		Price:          row.Price,
		Image:          deref(row.Image),
		Images:         row.Images,
		CategoryID:     row.CategoryID,
		Stock:          row.Stock,
		Unit:           row.Unit,
		IsOffer:        row.IsOffer,
		OfferPercent:   row.OfferPercent,
		IsBestSeller:   row.IsBestSeller,
		SEOTitle:       deref(row.SEOTitle),
		SEODescription: deref(row.SEODescription),
	}
	if row.OriginalPrice.Valid {
		op := row.OriginalPrice.Decimal
		p.OriginalPrice = &op
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	p.DisplayName = p.Name
	return p, nil
}

func CategoryFromRow(row models.Category) (Category, error) {
	if row.ID == "" {
		return Category{}, fmt.Errorf("%w: category without id", ErrMalformedRow)
	}
	if strings.TrimSpace(row.Name) == "" {
		return Category{}, fmt.Errorf("%w: category %s has no name", ErrMalformedRow, row.ID)
	}
	return Category{
		ID:          row.ID,
		Name:        row.Name,
		NameEn:      deref(row.NameEn),
		DisplayName: row.Name,
		Image:       deref(row.Image),
		Description: deref(row.Description),
		ParentID:    row.ParentID,
		SortOrder:   row.SortOrder,
	}, nil
}

func ContentBlockFromRow(row models.ContentBlock) (ContentBlock, error) {
	if row.Slug == "" {
		return ContentBlock{}, fmt.Errorf("%w: content block %s has no slug", ErrMalformedRow, row.ID)
	}
	return ContentBlock{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		Type:      row.Type,
		Content:   deref(row.Content),
		Location:  deref(row.Location),
		SortOrder: row.SortOrder,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func pick(lang i18n.Lang, bn, en string) string {
	if lang == i18n.English && en != "" {
		return en
	}
	return bn
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
