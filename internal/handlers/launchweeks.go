package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/launchlist/launchlist-go/internal/launchweek"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/ranking"
	"github.com/launchlist/launchlist-go/internal/repository"
)

type LaunchRequest struct {
	StartupID  uuid.UUID `json:"startup_id" binding:"required"`
	LaunchType string    `json:"launch_type" binding:"required"`
}

// GetLaunchWeeks classifies the week calendar into current, next, and last
// completed, each with availability. When no upcoming week exists the
// response carries a synthetic 24-hour countdown target instead.
func GetLaunchWeeks(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	weeks, err := repository.NewLaunchWeekRepository(db).ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query launch weeks", "details": err.Error()})
		return
	}

	now := time.Now().UTC()
	windows := launchweek.Resolve(now, weeks)

	resp := gin.H{
		"current": nil,
		"next":    nil,
		"last":    nil,
	}
	if windows.Current != nil {
		resp["current"] = windows.Current.ToResponse()
	}
	if windows.Next != nil {
		resp["next"] = windows.Next.ToResponse()
	} else {
		resp["countdown_target"] = now.Add(24 * time.Hour)
	}
	if windows.Last != nil {
		resp["last"] = windows.Last.ToResponse()
	}

	c.JSON(http.StatusOK, resp)
}

// LaunchStartup moves an approved startup into a launch week. Only the free
// launch type exists; premium launches are not available yet.
func LaunchStartup(c *gin.Context) {
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

	weekID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid launch week ID format"})
		return
	}

	var req LaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	switch req.LaunchType {
	case "free":
	case "premium":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Premium launches are not available yet"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid launch type"})
		return
	}

	// Only the owner may launch their startup
	var ownerID *uuid.UUID
	err = db.QueryRow(c.Request.Context(),
		"SELECT owner_id FROM startups WHERE id = $1", req.StartupID,
	).Scan(&ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}
	isAdmin, _ := middleware.GetAuthIsAdmin(c)
	if !isAdmin && (ownerID == nil || *ownerID != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only launch your own startup"})
		return
	}

	err = repository.NewLaunchWeekRepository(db).Assign(c.Request.Context(), weekID, req.StartupID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrWeekNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Launch week not found"})
		case errors.Is(err, repository.ErrStartupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		case errors.Is(err, repository.ErrNotApproved):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only approved startups can launch"})
		case errors.Is(err, repository.ErrAlreadyInWeek):
			c.JSON(http.StatusConflict, gin.H{"error": "Startup is already launched into this week"})
		case errors.Is(err, repository.ErrWeekFull):
			c.JSON(http.StatusConflict, gin.H{"error": "This launch week is full"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to launch startup", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Startup launched",
		"startup_id": req.StartupID,
		"week_id":    weekID,
		"status":     models.StartupStatusLaunched,
	})
}

// GetLaunchWeekRanking returns the week's startups with dense competition
// places: tied vote counts share a place and the next distinct count
// increments the place by one.
func GetLaunchWeekRanking(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	weekID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid launch week ID format"})
		return
	}

	repo := repository.NewLaunchWeekRepository(db)
	if _, err := repo.GetByID(c.Request.Context(), weekID); err != nil {
		if errors.Is(err, repository.ErrWeekNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Launch week not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query launch week", "details": err.Error()})
		}
		return
	}

	startups, err := repo.RankedStartups(c.Request.Context(), weekID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query launches", "details": err.Error()})
		return
	}

	entries := make([]ranking.Entry, 0, len(startups))
	for _, s := range startups {
		entries = append(entries, ranking.Entry{
			ID:      s.ID.String(),
			Slug:    s.Slug,
			Name:    s.Name,
			Tagline: s.Tagline,
			Upvotes: len(s.UpvoterIDs),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"week_id": weekID,
		"ranking": ranking.Rank(entries),
	})
}
