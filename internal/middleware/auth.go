package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trainymonked/reviews/internal/auth"
)

const authContextKey = "authContext"

// Authenticate resolves the caller's identity from the Authorization
// header when one is present. Anonymous requests pass through with no
// identity set; services decide whether a session is required.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtSecret)
		if ok {
			c.Set(authContextKey, &auth.Context{
				UserID:          claims.UserID,
				IsAdmin:         claims.IsAdmin,
				PreferredLocale: claims.PreferredLocale,
			})
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			}})
			return
		}

		c.Set(authContextKey, &auth.Context{
			UserID:          claims.UserID,
			IsAdmin:         claims.IsAdmin,
			PreferredLocale: claims.PreferredLocale,
		})
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtSecret string) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CallerFromContext returns the resolved identity, or nil for anonymous
// requests.
func CallerFromContext(c *gin.Context) *auth.Context {
	val, exists := c.Get(authContextKey)
	if !exists {
		return nil
	}
	caller, ok := val.(*auth.Context)
	if !ok {
		return nil
	}
	return caller
}
