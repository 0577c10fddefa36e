// Package middleware holds the Gin middlewares shared by the API routes:
// bearer-token authentication, the role gate, CORS, and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

const (
	// ContextUserID is the gin context key holding the caller's user id.
	ContextUserID = "auth.user_id"
	// ContextRole is the gin context key holding the caller's role.
	ContextRole = "auth.role"
)

// CallerID returns the authenticated user's id from the request context.
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(c *gin.Context) authz.Role {
	return authz.Role(c.GetString(ContextRole))
}

// Authenticate verifies the Authorization bearer token and stores the
// caller's identity in the request context. Requests without a valid token
// are rejected with 401.
func Authenticate(tokens *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, string(claims.Role))
		c.Next()
	}
}

// Require gates a route on a single operation from the permission table.
// It must run after Authenticate.
func Require(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.Allowed(op, CallerRole(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CORS answers preflight requests and sets the allow headers for the
// configured origin. An empty origin disables CORS entirely. The request
// origin is echoed back rather than the configured value: browsers reject
// the literal "*" together with Allow-Credentials.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowedOrigin != "" && origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
