package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trimly-be/internal/jwt"
)

// Context keys set by the auth middlewares.
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware requires a valid session token and puts the caller's
// identity on the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the caller's identity when a valid token
// is presented but lets the request through anonymously otherwise. Used on
// shorten so unauthenticated callers still get ownerless records.
func OptionalAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				c.Set(UserIDKey, claims.UserID)
				c.Set(EmailKey, claims.Email)
			}
		}
		c.Next()
	}
}
