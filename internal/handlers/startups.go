package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/moderation"
	"github.com/launchlist/launchlist-go/internal/repository"
	"github.com/launchlist/launchlist-go/internal/urlnorm"
)

type SubmitStartupRequest struct {
	Name        string `json:"name" binding:"required,max=80"`
	Tagline     string `json:"tagline" binding:"max=140"`
	Description string `json:"description" binding:"max=4000"`
	WebsiteURL  string `json:"website_url" binding:"required,max=500"`
}

// ListStartups returns launched startups, newest first. ?status= lets the
// owner dashboard filter by review state.
func ListStartups(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	status := c.DefaultQuery("status", models.StartupStatusLaunched)
	switch status {
	case models.StartupStatusPending, models.StartupStatusApproved,
		models.StartupStatusRejected, models.StartupStatusLaunched:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	query := `
		SELECT id, owner_id, name, slug, tagline, description, website_url,
			normalized_url, status, rejection_reason, upvoter_ids, is_premium,
			created_at, updated_at
		FROM startups
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := db.Query(c.Request.Context(), query, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query startups", "details": err.Error()})
		return
	}
	defer rows.Close()

	startups := []models.StartupListResponse{}
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
		startups = append(startups, s.ToListResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"startups": startups,
		"count":    len(startups),
	})
}

// GetStartup returns one startup by slug, with the viewer's upvote state
// when authenticated.
func GetStartup(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	repo := repository.NewStartupRepository(db)
	startup, err := repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrStartupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query startup", "details": err.Error()})
		}
		return
	}

	viewerID, _ := middleware.GetAuthUserID(c)
	c.JSON(http.StatusOK, startup.ToDetailResponse(viewerID))
}

// SubmitStartup validates a submission, moderates it, and inserts it with a
// unique slug. Duplicate websites are rejected by the normalized-URL unique
// index, not by scanning existing rows.
func SubmitStartup(moderator *moderation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		var req SubmitStartupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		normalized, err := urlnorm.Normalize(req.WebsiteURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid website URL", "details": err.Error()})
			return
		}

		status, reason := moderator.Decide(c.Request.Context(), moderation.Submission{
			Name:        req.Name,
			Tagline:     req.Tagline,
			Description: req.Description,
			WebsiteURL:  req.WebsiteURL,
		})

		startup := &models.Startup{
			OwnerID:       &userID,
			Name:          req.Name,
			Tagline:       req.Tagline,
			Description:   req.Description,
			WebsiteURL:    req.WebsiteURL,
			NormalizedURL: normalized,
			Status:        status,
		}
		if reason != "" {
			startup.RejectionReason = &reason
		}

		repo := repository.NewStartupRepository(db)
		if err := repo.Create(c.Request.Context(), startup); err != nil {
			if errors.Is(err, repository.ErrDuplicateWebsite) {
				c.JSON(http.StatusConflict, gin.H{"error": "A startup with this website already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create startup", "details": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, startup.ToDetailResponse(userID))
	}
}

// GetMyStartups returns the authenticated user's submissions
func GetMyStartups(c *gin.Context) {
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

	query := `
		SELECT id, owner_id, name, slug, tagline, description, website_url,
			normalized_url, status, rejection_reason, upvoter_ids, is_premium,
			created_at, updated_at
		FROM startups
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.Query(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query startups", "details": err.Error()})
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
		startups = append(startups, s.ToDetailResponse(userID))
	}

	c.JSON(http.StatusOK, gin.H{
		"startups": startups,
		"count":    len(startups),
	})
}
