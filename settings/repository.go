package settings

import (
	"context"
	"fmt"

	"github.com/rifat2413010/e-commerce-bloom/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Values returns every active setting as key -> value. Null values map to "".
func (r *Repository) Values(ctx context.Context) (map[string]string, error) {
	var rows []models.SiteSetting
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Value != nil {
			values[row.Key] = *row.Value
		} else {
			values[row.Key] = ""
		}
	}
	return values, nil
}

func (r *Repository) Site(ctx context.Context) (Site, error) {
	values, err := r.Values(ctx)
	if err != nil {
		return Site{}, err
	}
	return FromValues(values)
}

// Upsert writes every key in values, creating rows that do not exist yet.
// Numeric keys are validated before anything is written.
func (r *Repository) Upsert(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if IsNumeric(key) {
			if _, err := ParseAmount(key, value); err != nil {
				return err
			}
		}
	}

	rows := make([]models.SiteSetting, 0, len(values))
	for key, value := range values {
		v := value
		rows = append(rows, models.SiteSetting{Key: key, Value: &v, Type: typeFor(key), Category: categoryFor(key), IsActive: true})
	}
	if len(rows) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert site settings: %w", err)
	}
	return nil
}

// Seed inserts the entries whose keys are missing and leaves existing rows untouched.
// It returns the number of rows created.
func (r *Repository) Seed(ctx context.Context, entries []SeedEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	rows := make([]models.SiteSetting, 0, len(entries))
	for _, e := range entries {
		if IsNumeric(e.Key) {
			if _, err := ParseAmount(e.Key, e.Value); err != nil {
				return 0, err
			}
		}
		value := e.Value
		row := models.SiteSetting{Key: e.Key, Value: &value, Type: e.Type, Category: e.Category, IsActive: true}
		if row.Type == "" {
			row.Type = typeFor(e.Key)
		}
		if row.Category == "" {
			row.Category = categoryFor(e.Key)
		}
		if e.Description != "" {
			desc := e.Description
			row.Description = &desc
		}
		rows = append(rows, row)
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("seed site settings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func typeFor(key string) string {
	if IsNumeric(key) {
		return "number"
	}
	if key == KeyLogo {
		return "image"
	}
	return "text"
}

func categoryFor(key string) string {
	switch key {
	case KeyDeliveryCharge, KeyFreeDeliveryMin, KeyDeliveryInsideDhaka, KeyDeliveryOutsideDhaka:
		return "delivery"
	case KeyPhone, KeyWhatsApp, KeyEmail, KeyAddress:
		return "contact"
	default:
		return "general"
	}
}
