package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/jwt"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

const (
	// AuthCookie carries the signed session token, HTTP-only.
	AuthCookie = "auth_token"

	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
)

// Auth returns a middleware that enforces a valid session token, taken from
// the auth cookie or a Bearer Authorization header.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			response.Unauthorized(c, "Unauthorized")
			return
		}
		claims, err := jwt.Parse(secret, token)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			return
		}
		c.Set(ContextKeyUserID, claims.UserID())
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// ExtractToken pulls the raw token from the cookie or Authorization header.
func ExtractToken(c *gin.Context) string {
	if raw, err := c.Cookie(AuthCookie); err == nil && raw != "" {
		return raw
	}
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}
