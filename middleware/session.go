package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/models"
)

const SessionIDKey = "session_id"

// SessionVerifier returns the session id carried by a token.
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// RequireSession reads the Authorization header and stores the session id on the context.
func RequireSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is missing",
			})
			return
		}
		sessionID, err := verifier.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
			return
		}
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the id set by RequireSession.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
