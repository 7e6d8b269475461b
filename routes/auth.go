package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/session", auth.CreateSession(d.Sessions))
	}
}
