package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/launchlist/launchlist-go/internal/auth"
)

const (
	authUserKey  = "auth_user_id"
	authEmailKey = "auth_email"
	authAdminKey = "auth_is_admin"
)

// RequireAuth validates the session JWT and sets user context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}

		c.Set(authUserKey, claims.UserID)
		c.Set(authEmailKey, claims.Email)
		c.Set(authAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// OptionalAuth sets user context when a valid token is present but lets
// anonymous requests through. Used on public reads that personalize their
// response (e.g. "did I upvote this").
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtService)
		if err == nil {
			c.Set(authUserKey, claims.UserID)
			c.Set(authEmailKey, claims.Email)
			c.Set(authAdminKey, claims.IsAdmin)
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(authAdminKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadFormat
	}

	return jwtService.ValidateToken(parts[1])
}

var (
	errMissingHeader = errors.New("Authorization header required")
	errBadFormat     = errors.New("Invalid authorization format. Use: Bearer <token>")
)

// GetAuthUserID retrieves the authenticated user ID from context
func GetAuthUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(authUserKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetAuthEmail retrieves the authenticated email from context
func GetAuthEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(authEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetAuthIsAdmin retrieves whether the authenticated user is an admin
func GetAuthIsAdmin(c *gin.Context) (bool, bool) {
	isAdmin, exists := c.Get(authAdminKey)
	if !exists {
		return false, false
	}
	return isAdmin.(bool), true
}
