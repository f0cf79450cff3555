package auth

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const (
	CtxAuthUID = "auth_uid"
	CtxEmail   = "auth_email"
)

// WithUser resolves the caller's identity and stores it in the gin context.
// With a Firebase client it verifies the bearer ID token; without one it
// falls back to the X-User-Id header for development setups.
func WithUser(authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authClient == nil {
			uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
			if uid == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
				c.Abort()
				return
			}
			c.Set(CtxAuthUID, uid)
			c.Set(CtxEmail, strings.TrimSpace(c.GetHeader("X-User-Email")))
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxAuthUID, decoded.UID)
		if email, ok := decoded.Claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}

		c.Next()
	}
}

// UserID extracts the authenticated user id from the gin context
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAuthUID))
}

// UserEmail extracts the authenticated user email, if known
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
