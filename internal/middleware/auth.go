// Package middleware holds the gin middleware of the admin gateway.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/session"
)

// CookieName is the cookie carrying the admin session token.
const CookieName = "admin_session"

// ClaimsKey is the gin context key holding *session.Claims.
const ClaimsKey = "session_claims"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/admin"

// SessionValidator checks a session token.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*session.Claims, error)
}

// RequireAdmin rejects requests without a valid admin session. Page requests
// are redirected to the login page; API requests get a JSON error.
func RequireAdmin(sessions SessionValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := Token(c)
		if token == "" {
			deny(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidToken) && !errors.Is(err, session.ErrRevoked) {
				logger.Error("Failed to validate session", zap.Error(err))
			}
			deny(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		if claims.Role != session.RoleAdmin {
			logger.Warn("Non-admin session rejected", zap.String("username", claims.Subject), zap.String("role", claims.Role))
			deny(c, http.StatusForbidden, "Admin role required")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Token returns the session token from the cookie or a Bearer header.
func Token(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Claims returns the session claims RequireAdmin stored, if any.
func Claims(c *gin.Context) (*session.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*session.Claims)
	return claims, ok
}

// IsAPI reports whether the request targets the JSON API.
func IsAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func deny(c *gin.Context, status int, message string) {
	if IsAPI(c) {
		c.AbortWithStatusJSON(status, gin.H{"error": message})
		return
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}
