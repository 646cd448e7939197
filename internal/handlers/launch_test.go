package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchlist/launchlist-go/internal/auth"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/testutil"
)

func createWeek(t *testing.T, pool *pgxpool.Pool, maxSlots int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO launch_weeks (id, start_date, end_date, max_slots)
		VALUES ($1, $2, $3, $4)
	`, id, now.AddDate(0, 0, -1), now.AddDate(0, 0, 6), maxSlots)
	require.NoError(t, err)
	return id
}

func launchRouter(pool *pgxpool.Pool, jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithDB(pool))
	r.POST("/api/launch-weeks/:id/launch", middleware.RequireAuth(jwtService), LaunchStartup)
	return r
}

func doLaunch(t *testing.T, r *gin.Engine, token string, weekID, startupID uuid.UUID, launchType string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(LaunchRequest{StartupID: startupID, LaunchType: launchType})
	req := httptest.NewRequest(http.MethodPost, "/api/launch-weeks/"+weekID.String()+"/launch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLaunchStartup(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	ownerID := testutil.CreateUser(t, pool, "founder@example.com", false)
	startup := testutil.CreateStartup(t, pool, ownerID, "Cool App", "cool-app", models.StartupStatusApproved)
	weekID := createWeek(t, pool, 50)

	token, err := jwtService.GenerateToken(ownerID, "founder@example.com", false)
	require.NoError(t, err)

	r := launchRouter(pool, jwtService)

	w := doLaunch(t, r, token, weekID, startup.ID, "free")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var status string
	err = pool.QueryRow(context.Background(),
		"SELECT status FROM startups WHERE id = $1", startup.ID,
	).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, models.StartupStatusLaunched, status)

	var count int
	err = pool.QueryRow(context.Background(),
		"SELECT cardinality(startup_ids) FROM launch_weeks WHERE id = $1", weekID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLaunchStartupCapacityExhausted(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	ownerID := testutil.CreateUser(t, pool, "founder@example.com", false)
	first := testutil.CreateStartup(t, pool, ownerID, "First", "first", models.StartupStatusApproved)
	second := testutil.CreateStartup(t, pool, ownerID, "Second", "second", models.StartupStatusApproved)
	weekID := createWeek(t, pool, 1)

	token, err := jwtService.GenerateToken(ownerID, "founder@example.com", false)
	require.NoError(t, err)

	r := launchRouter(pool, jwtService)

	w := doLaunch(t, r, token, weekID, first.ID, "free")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doLaunch(t, r, token, weekID, second.ID, "free")
	assert.Equal(t, http.StatusConflict, w.Code)

	// The losing startup keeps its approved status
	var status string
	err = pool.QueryRow(context.Background(),
		"SELECT status FROM startups WHERE id = $1", second.ID,
	).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, models.StartupStatusApproved, status)
}

func TestLaunchStartupPremiumNotAvailable(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	ownerID := testutil.CreateUser(t, pool, "founder@example.com", false)
	startup := testutil.CreateStartup(t, pool, ownerID, "Cool App", "cool-app", models.StartupStatusApproved)
	weekID := createWeek(t, pool, 50)

	token, err := jwtService.GenerateToken(ownerID, "founder@example.com", false)
	require.NoError(t, err)

	r := launchRouter(pool, jwtService)

	w := doLaunch(t, r, token, weekID, startup.ID, "premium")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not available yet")
}

func TestLaunchStartupRequiresOwnership(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	ownerID := testutil.CreateUser(t, pool, "founder@example.com", false)
	otherID := testutil.CreateUser(t, pool, "other@example.com", false)
	startup := testutil.CreateStartup(t, pool, ownerID, "Cool App", "cool-app", models.StartupStatusApproved)
	weekID := createWeek(t, pool, 50)

	token, err := jwtService.GenerateToken(otherID, "other@example.com", false)
	require.NoError(t, err)

	r := launchRouter(pool, jwtService)

	w := doLaunch(t, r, token, weekID, startup.ID, "free")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLaunchStartupRequiresApprovedStatus(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	jwtService := auth.NewJWTService("test-secret", "test")

	ownerID := testutil.CreateUser(t, pool, "founder@example.com", false)
	startup := testutil.CreateStartup(t, pool, ownerID, "Cool App", "cool-app", models.StartupStatusPending)
	weekID := createWeek(t, pool, 50)

	token, err := jwtService.GenerateToken(ownerID, "founder@example.com", false)
	require.NoError(t, err)

	r := launchRouter(pool, jwtService)

	w := doLaunch(t, r, token, weekID, startup.ID, "free")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
