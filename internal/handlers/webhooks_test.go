package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist-go/internal/config"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/moderation"
	"github.com/launchlist/launchlist-go/internal/testutil"
)

const paddleSecret = "pdl_test_secret"

func paddleHeader(body []byte, ts string) string {
	mac := hmac.New(sha256.New, []byte(paddleSecret))
	fmt.Fprintf(mac, "%s:", ts)
	mac.Write(body)
	return fmt.Sprintf("ts=%s;h1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookRouter(pool *pgxpool.Pool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithDB(pool))
	moderator := moderation.NewService(nil, config.ModerationApprove, zap.NewNop())
	r.POST("/api/webhooks/intake", IntakeWebhook(moderator, "intake-secret", zap.NewNop()))
	r.POST("/api/webhooks/paddle", PaddleWebhook(paddleSecret, zap.NewNop()))
	return r
}

func postPaddle(r *gin.Engine, body []byte, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/paddle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Paddle-Signature", header)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaddleWebhookMarksUserPremium(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	userID := testutil.CreateUser(t, pool, "buyer@example.com", false)
	r := webhookRouter(pool)

	body := []byte(fmt.Sprintf(
		`{"event_id":"evt_1","event_type":"transaction.completed","data":{"custom_data":{"user_id":"%s"}}}`,
		userID,
	))

	w := postPaddle(r, body, paddleHeader(body, "1671552777"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var premium bool
	err := pool.QueryRow(context.Background(),
		"SELECT is_premium FROM users WHERE id = $1", userID,
	).Scan(&premium)
	require.NoError(t, err)
	assert.True(t, premium)
}

func TestPaddleWebhookIdempotentOnEventID(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	userID := testutil.CreateUser(t, pool, "buyer@example.com", false)
	r := webhookRouter(pool)

	body := []byte(fmt.Sprintf(
		`{"event_id":"evt_dup","event_type":"transaction.completed","data":{"custom_data":{"user_id":"%s"}}}`,
		userID,
	))
	header := paddleHeader(body, "1671552777")

	w := postPaddle(r, body, header)
	require.Equal(t, http.StatusOK, w.Code)

	w = postPaddle(r, body, header)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")

	var events int
	err := pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM webhook_events WHERE provider = 'paddle'",
	).Scan(&events)
	require.NoError(t, err)
	assert.Equal(t, 1, events)
}

func TestPaddleWebhookRejectsBadSignature(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	r := webhookRouter(pool)

	body := []byte(`{"event_id":"evt_2","event_type":"transaction.completed"}`)

	w := postPaddle(r, body, "ts=1;h1=deadbeef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIntakeWebhookCreatesStartup(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	r := webhookRouter(pool)

	body := []byte(`{"event_id":"sub_1","name":"Cool App","tagline":"Ship faster","website_url":"https://www.coolapp.io/"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/intake", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "intake-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var slug, normalized string
	err := pool.QueryRow(context.Background(),
		"SELECT slug, normalized_url FROM startups WHERE name = 'Cool App'",
	).Scan(&slug, &normalized)
	require.NoError(t, err)
	assert.Equal(t, "cool-app", slug)
	assert.Equal(t, "coolapp.io", normalized)
}

func TestIntakeWebhookRejectsBadSecret(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	r := webhookRouter(pool)

	body := []byte(`{"name":"Cool App","website_url":"https://coolapp.io"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/intake", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIntakeWebhookDuplicateWebsite(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	userID := testutil.CreateUser(t, pool, "founder@example.com", false)
	testutil.CreateStartup(t, pool, userID, "Existing", "existing", "launched")
	r := webhookRouter(pool)

	// existing.example.com is already taken (www/scheme variants collide)
	body := []byte(`{"name":"Clone","website_url":"http://www.existing.example.com/"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/intake", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "intake-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
