package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog row. Name is the Bangla name, NameEn the English one.
type Product struct {
	ID             string              `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string              `gorm:"not null" json:"name"`
	NameEn         *string             `json:"name_en"`
	Description    *string             `json:"description"`
	DescriptionEn  *string             `json:"description_en"`
	Price          decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	OriginalPrice  decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"original_price"`
	Image          *string             `json:"image"`
	Images         []string            `gorm:"serializer:json;type:jsonb" json:"images"`
	CategoryID     *string             `gorm:"type:uuid;index" json:"category_id"`
	Category       *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Stock          int                 `gorm:"not null;default:0" json:"stock"`
	Unit           string              `gorm:"not null;default:'pcs'" json:"unit"`
	IsOffer        bool                `gorm:"not null;default:false" json:"is_offer"`
	OfferPercent   *int                `json:"offer_percent"`
	IsBestSeller   bool                `gorm:"not null;default:false" json:"is_best_seller"`
	IsActive       bool                `gorm:"not null;default:true;index" json:"is_active"`
	SEOTitle       *string             `gorm:"column:seo_title" json:"seo_title"`
	SEODescription *string             `gorm:"column:seo_description" json:"seo_description"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
