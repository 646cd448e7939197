package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist-go/internal/auth"
	"github.com/launchlist/launchlist-go/internal/email"
	"github.com/launchlist/launchlist-go/internal/middleware"
)

type MagicLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyRequest struct {
	TokenID uuid.UUID `json:"token_id" binding:"required"`
	Token   string    `json:"token" binding:"required"`
}

type VerifyResponse struct {
	Token   string    `json:"token"`
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

// RequestMagicLink creates a single-use login token and emails the link.
// The response never reveals whether the address is known.
func RequestMagicLink(mailer email.Mailer, baseURL string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		var req MagicLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		addr := strings.ToLower(strings.TrimSpace(req.Email))

		token, hash, err := auth.NewMagicToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create login token"})
			return
		}

		tokenID := uuid.New()
		_, err = db.Exec(c.Request.Context(), `
			INSERT INTO login_tokens (id, email, token_hash, expires_at)
			VALUES ($1, $2, $3, $4)
		`, tokenID, addr, hash, time.Now().Add(auth.MagicLinkTTLMinutes*time.Minute))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store login token", "details": err.Error()})
			return
		}

		link := fmt.Sprintf("%s/auth/verify?token_id=%s&token=%s", baseURL, tokenID, token)
		if err := mailer.SendMagicLink(c.Request.Context(), addr, link); err != nil {
			log.Error("failed to send magic link", zap.String("email", addr), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send login email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Check your inbox for a login link"})
	}
}

// VerifyMagicLink consumes a login token, upserts the user, and returns a
// session JWT.
func VerifyMagicLink(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		// Consume the token atomically: only one verification can win
		var addr, tokenHash string
		err := db.QueryRow(c.Request.Context(), `
			UPDATE login_tokens
			SET consumed_at = NOW()
			WHERE id = $1 AND consumed_at IS NULL AND expires_at > NOW()
			RETURNING email, token_hash
		`, req.TokenID).Scan(&addr, &tokenHash)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login link is invalid or has expired"})
			return
		}

		if !auth.VerifyMagicToken(tokenHash, req.Token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login link is invalid or has expired"})
			return
		}

		var userID uuid.UUID
		var isAdmin bool
		err = db.QueryRow(c.Request.Context(), `
			INSERT INTO users (id, email)
			VALUES ($1, $2)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id, is_admin
		`, uuid.New(), addr).Scan(&userID, &isAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in", "details": err.Error()})
			return
		}

		token, err := jwtService.GenerateToken(userID, addr, isAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, VerifyResponse{
			Token:   token,
			UserID:  userID,
			Email:   addr,
			IsAdmin: isAdmin,
		})
	}
}

// Me returns the authenticated user's profile
func Me(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var email, name string
	var isAdmin, isPremium bool
	err := db.QueryRow(c.Request.Context(), `
		SELECT email, name, is_admin, is_premium FROM users WHERE id = $1
	`, userID).Scan(&email, &name, &isAdmin, &isPremium)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         userID,
		"email":      email,
		"name":       name,
		"is_admin":   isAdmin,
		"is_premium": isPremium,
	})
}
