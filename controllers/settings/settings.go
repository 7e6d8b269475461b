package settingsController

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/rifat2413010/e-commerce-bloom/settings"
)

type Store interface {
	Values(ctx context.Context) (map[string]string, error)
	Site(ctx context.Context) (settings.Site, error)
	Upsert(ctx context.Context, values map[string]string) error
}

// GET /api/settings
func GetSiteSettings(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		site, err := store.Site(c.Request.Context())
		if err != nil {
			respond.Internal(c, "Failed to load site settings", err)
			return
		}
		c.JSON(http.StatusOK, site)
	}
}

// GET /admin/settings
//
// Raw key/value pairs, including keys the typed view does not know.
func GetAllSettings(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := store.Values(c.Request.Context())
		if err != nil {
			respond.Internal(c, "Failed to load settings", err)
			return
		}
		c.JSON(http.StatusOK, values)
	}
}

// PUT /admin/settings
//
// Body is a flat {"key": "value"} object.
func UpdateSettings(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input map[string]string
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}
		for key := range input {
			if key == "" {
				respond.BadRequest(c, "Setting keys must not be empty")
				return
			}
		}

		err := store.Upsert(c.Request.Context(), input)
		if errors.Is(err, settings.ErrInvalidValue) {
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_setting", err.Error())
			return
		}
		if err != nil {
			respond.Internal(c, "Failed to save settings", err)
			return
		}

		site, err := store.Site(c.Request.Context())
		if err != nil {
			respond.Internal(c, "Failed to load site settings", err)
			return
		}
		c.JSON(http.StatusOK, site)
	}
}
