// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/adapter"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the caller's user ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
	// AuthenticatedKey marks requests whose identity came from a valid token.
	AuthenticatedKey ContextKey = "authenticated"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	guestUserID  string
}

// NewAuthMiddleware creates a new auth middleware instance. Anonymous callers
// of optional routes are treated as guestUserID.
func NewAuthMiddleware(tokenService adapter.TokenService, guestUserID string) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		guestUserID:  guestUserID,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !m.authenticate(c, authHeader) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthenticate identifies the caller when a token is present. Requests
// without an Authorization header continue as the guest user; a header with a
// bad token is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(string(UserIDKey), m.guestUserID)
			c.Set(string(AuthenticatedKey), false)
			c.Next()
			return
		}

		if !m.authenticate(c, authHeader) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, authHeader string) bool {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return false
	}

	claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
	if err != nil {
		return false
	}

	c.Set(string(UserIDKey), claims.UserID)
	c.Set(string(UserEmailKey), claims.Email)
	c.Set(string(AuthenticatedKey), true)
	return true
}

// GetUserIDFromContext extracts the caller's user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// IsAuthenticated reports whether the caller presented a valid token.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(string(AuthenticatedKey))
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
