package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/services"
)

// TokenCookie is the HTTP-only cookie carrying the session token.
const TokenCookie = "token"

// ContextUserKey is where the authenticated user lands in the gin context.
const ContextUserKey = "user"

// ExtractToken pulls the session token from the request: the token cookie
// first, then an Authorization bearer header. Returns "" if neither is set.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Auth authenticates the request and stores the live user in the context.
// The user is re-fetched from storage on every request: the token's embedded
// role is never trusted, and a deleted account fails here even if its token
// has not expired.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "code": "Unauthenticated"})
			c.Abort()
			return
		}

		user, err := auth.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenInvalid):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "TokenInvalid"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "code": "UserNotFound"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			}
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireRole checks that the authenticated user has one of the given roles.
// Must run after Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "code": "Unauthenticated"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions", "code": "Forbidden"})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
