// Package respond writes the JSON error bodies shared by every controller.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/i18n"
	"github.com/rifat2413010/e-commerce-bloom/models"
)

func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: code, Message: message})
}

func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: code, Message: message, Details: details})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "bad_request", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "not_found", message)
}

// Internal logs err with the request path and answers with a generic message.
func Internal(c *gin.Context, message string, err error) {
	slog.Error(message,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	Error(c, http.StatusInternalServerError, "internal_error", message)
}

// Lang picks the response language from ?lang= and Accept-Language.
func Lang(c *gin.Context) i18n.Lang {
	return i18n.FromRequest(c.GetHeader("Accept-Language"), c.Query("lang"))
}
