package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/launchlist/launchlist-go/internal/launchweek"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/repository"
	"github.com/launchlist/launchlist-go/internal/slugify"
)

type ReviewRequest struct {
	Approved bool    `json:"approved"`
	Reason   *string `json:"reason,omitempty"`
}

type SeedWeeksRequest struct {
	Count    int `json:"count"`
	MaxSlots int `json:"max_slots"`
}

// ListPendingStartups returns the admin review queue
func ListPendingStartups(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `
		SELECT id, owner_id, name, slug, tagline, description, website_url,
			normalized_url, status, rejection_reason, upvoter_ids, is_premium,
			created_at, updated_at
		FROM startups
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`

	rows, err := db.Query(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query review queue", "details": err.Error()})
		return
	}
	defer rows.Close()

	startups := []models.StartupDetailResponse{}
	for rows.Next() {
		var s models.Startup
		err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Tagline, &s.Description,
			&s.WebsiteURL, &s.NormalizedURL, &s.Status, &s.RejectionReason,
			&s.UpvoterIDs, &s.IsPremium, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse startup data", "details": err.Error()})
			return
		}
		startups = append(startups, s.ToDetailResponse(uuid.Nil))
	}

	c.JSON(http.StatusOK, gin.H{
		"startups": startups,
		"count":    len(startups),
	})
}

// ReviewStartup approves or rejects a pending startup
func ReviewStartup(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	startupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startup ID format"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	status := models.StartupStatusApproved
	var reason *string
	if !req.Approved {
		status = models.StartupStatusRejected
		reason = req.Reason
	}

	tag, err := db.Exec(c.Request.Context(), `
		UPDATE startups
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`, status, reason, startupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review startup", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending startup with this ID"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"startup_id": startupID,
		"status":     status,
	})
}

// ListSubmittedDirectories returns community directory suggestions awaiting review
func ListSubmittedDirectories(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `
		SELECT id, name, url, description, submitter_email, status, created_at, reviewed_at
		FROM submitted_directories
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`

	rows, err := db.Query(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query submissions", "details": err.Error()})
		return
	}
	defer rows.Close()

	submissions := []models.SubmittedDirectory{}
	for rows.Next() {
		var s models.SubmittedDirectory
		err := rows.Scan(&s.ID, &s.Name, &s.URL, &s.Description, &s.SubmitterEmail, &s.Status, &s.CreatedAt, &s.ReviewedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse submission data", "details": err.Error()})
			return
		}
		submissions = append(submissions, s)
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"count":       len(submissions),
	})
}

// ReviewSubmittedDirectory approves or rejects a suggested directory.
// Approval promotes it into the curated catalog in the same transaction.
func ReviewSubmittedDirectory(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(c.Request.Context())

	status := models.ReviewStatusApproved
	if !req.Approved {
		status = models.ReviewStatusRejected
	}

	var name, url, description string
	err = tx.QueryRow(c.Request.Context(), `
		UPDATE submitted_directories
		SET status = $1, reviewed_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING name, url, description
	`, status, submissionID).Scan(&name, &url, &description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending submission with this ID"})
		return
	}

	var directoryID *uuid.UUID
	if req.Approved {
		id := uuid.New()
		_, err = tx.Exec(c.Request.Context(), `
			INSERT INTO directories (id, name, slug, url, description)
			VALUES ($1, $2, $3, $4, $5)
		`, id, name, slugify.Make(name), url, description)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A directory with this name already exists", "details": err.Error()})
			return
		}
		directoryID = &id
	}

	if err = tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission_id": submissionID,
		"status":        status,
		"directory_id":  directoryID,
	})
}

// SeedLaunchWeeks bulk-creates the week calendar: consecutive 7-day windows
// from the nearest past Monday. Reseeding skips weeks that already exist.
func SeedLaunchWeeks(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	req := SeedWeeksRequest{Count: 52, MaxSlots: 50}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}
	if req.Count <= 0 || req.Count > 520 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must be between 1 and 520"})
		return
	}
	if req.MaxSlots <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Max slots must be positive"})
		return
	}

	weeks := launchweek.Seed(time.Now().UTC(), req.Count, req.MaxSlots)
	inserted, err := repository.NewLaunchWeekRepository(db).SeedWeeks(c.Request.Context(), weeks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed launch weeks", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requested": req.Count,
		"inserted":  inserted,
	})
}
