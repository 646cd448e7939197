package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchlist/launchlist-go/internal/auth"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/testutil"
)

func newTestRouter(pool *pgxpool.Pool, jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithDB(pool))
	r.POST("/api/startups/:slug/upvote", middleware.RequireAuth(jwtService), ToggleUpvote)
	return r
}

func TestToggleUpvoteIdempotence(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	userID := testutil.CreateUser(t, pool, "voter@example.com", false)
	testutil.CreateStartup(t, pool, userID, "Cool App", "cool-app", models.StartupStatusLaunched)

	token, err := jwtService.GenerateToken(userID, "voter@example.com", false)
	require.NoError(t, err)

	r := newTestRouter(pool, jwtService)

	toggle := func() (bool, int) {
		req := httptest.NewRequest(http.MethodPost, "/api/startups/cool-app/upvote", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Upvoted bool `json:"upvoted"`
			Upvotes int  `json:"upvotes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Upvoted, resp.Upvotes
	}

	upvoted, count := toggle()
	assert.True(t, upvoted)
	assert.Equal(t, 1, count)

	// Toggling again returns to the original state
	upvoted, count = toggle()
	assert.False(t, upvoted)
	assert.Equal(t, 0, count)
}

func TestToggleUpvoteRequiresLaunchedStatus(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	userID := testutil.CreateUser(t, pool, "voter@example.com", false)
	testutil.CreateStartup(t, pool, userID, "Pending App", "pending-app", models.StartupStatusPending)

	token, err := jwtService.GenerateToken(userID, "voter@example.com", false)
	require.NoError(t, err)

	r := newTestRouter(pool, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/startups/pending-app/upvote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleUpvoteUnknownStartup(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	userID := testutil.CreateUser(t, pool, "voter@example.com", false)
	token, err := jwtService.GenerateToken(userID, "voter@example.com", false)
	require.NoError(t, err)

	r := newTestRouter(pool, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/startups/nope/upvote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleUpvoteRequiresAuth(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	r := newTestRouter(pool, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/startups/cool-app/upvote", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
