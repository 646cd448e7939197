package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/moderation"
	"github.com/launchlist/launchlist-go/internal/payments"
	"github.com/launchlist/launchlist-go/internal/repository"
	"github.com/launchlist/launchlist-go/internal/urlnorm"
)

type IntakePayload struct {
	EventID     string `json:"event_id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url"`
}

type paddleEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Data      struct {
		CustomData struct {
			UserID string `json:"user_id"`
		} `json:"custom_data"`
	} `json:"data"`
}

type dodoEvent struct {
	Type string `json:"type"`
	Data struct {
		Metadata struct {
			UserID string `json:"user_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// recordEvent inserts the provider event ID; a second delivery of the same
// event reports duplicate = true and the handler short-circuits.
func recordEvent(c *gin.Context, db *pgxpool.Pool, provider, eventID string) (duplicate bool, err error) {
	tag, err := db.Exec(c.Request.Context(), `
		INSERT INTO webhook_events (id, provider, event_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider, event_id) DO NOTHING
	`, uuid.New(), provider, eventID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 0, nil
}

// IntakeWebhook receives startup submissions from the external form
// provider. The payload runs through the same normalization and moderation
// path as API submissions; owner is unset until the submitter signs in.
func IntakeWebhook(moderator *moderation.Service, secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		provided := c.GetHeader("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
			return
		}

		var payload IntakePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
			return
		}
		if payload.Name == "" || payload.WebsiteURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and website URL are required"})
			return
		}

		if payload.EventID != "" {
			duplicate, err := recordEvent(c, db, "intake", payload.EventID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event", "details": err.Error()})
				return
			}
			if duplicate {
				c.JSON(http.StatusOK, gin.H{"message": "Event already processed"})
				return
			}
		}

		normalized, err := urlnorm.Normalize(payload.WebsiteURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid website URL", "details": err.Error()})
			return
		}

		status, reason := moderator.Decide(c.Request.Context(), moderation.Submission{
			Name:        payload.Name,
			Tagline:     payload.Tagline,
			Description: payload.Description,
			WebsiteURL:  payload.WebsiteURL,
		})

		startup := &models.Startup{
			Name:          payload.Name,
			Tagline:       payload.Tagline,
			Description:   payload.Description,
			WebsiteURL:    payload.WebsiteURL,
			NormalizedURL: normalized,
			Status:        status,
		}
		if reason != "" {
			startup.RejectionReason = &reason
		}

		if err := repository.NewStartupRepository(db).Create(c.Request.Context(), startup); err != nil {
			if errors.Is(err, repository.ErrDuplicateWebsite) {
				c.JSON(http.StatusConflict, gin.H{"error": "A startup with this website already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create startup", "details": err.Error()})
			}
			return
		}

		log.Info("intake webhook accepted submission",
			zap.String("slug", startup.Slug),
			zap.String("status", startup.Status),
		)

		c.JSON(http.StatusCreated, gin.H{
			"slug":   startup.Slug,
			"status": startup.Status,
		})
	}
}

// PaddleWebhook processes Paddle payment events. Signature is verified over
// the raw body; events are idempotent on their provider event ID.
func PaddleWebhook(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		if err := payments.VerifyPaddle(body, c.GetHeader("Paddle-Signature"), secret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		var event paddleEvent
		if err := json.Unmarshal(body, &event); err != nil || event.EventID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
			return
		}

		duplicate, err := recordEvent(c, db, "paddle", event.EventID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event", "details": err.Error()})
			return
		}
		if duplicate {
			c.JSON(http.StatusOK, gin.H{"message": "Event already processed"})
			return
		}

		if event.EventType == "transaction.completed" {
			if err := markUserPremium(c, db, event.Data.CustomData.UserID); err != nil {
				log.Error("failed to apply paddle payment", zap.String("event_id", event.EventID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
				return
			}
		}

		log.Info("processed paddle webhook",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
		)

		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

// DodoWebhook processes Dodo payment events (standard-webhooks signing).
func DodoWebhook(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		webhookID := c.GetHeader("webhook-id")
		err = payments.VerifyDodo(body, webhookID,
			c.GetHeader("webhook-timestamp"), c.GetHeader("webhook-signature"), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		var event dodoEvent
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
			return
		}

		duplicate, err := recordEvent(c, db, "dodo", webhookID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event", "details": err.Error()})
			return
		}
		if duplicate {
			c.JSON(http.StatusOK, gin.H{"message": "Event already processed"})
			return
		}

		if event.Type == "payment.succeeded" {
			if err := markUserPremium(c, db, event.Data.Metadata.UserID); err != nil {
				log.Error("failed to apply dodo payment", zap.String("webhook_id", webhookID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
				return
			}
		}

		log.Info("processed dodo webhook",
			zap.String("webhook_id", webhookID),
			zap.String("type", event.Type),
		)

		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

func markUserPremium(c *gin.Context, db *pgxpool.Pool, rawUserID string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return errors.New("event carries no valid user_id")
	}

	_, err = db.Exec(c.Request.Context(), `
		UPDATE users SET is_premium = true, updated_at = NOW() WHERE id = $1
	`, userID)
	return err
}
