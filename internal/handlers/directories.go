package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/urlnorm"
)

type SubmitDirectoryRequest struct {
	Name        string `json:"name" binding:"required,max=80"`
	URL         string `json:"url" binding:"required,max=500"`
	Description string `json:"description" binding:"max=1000"`
}

// ListDirectories returns the curated directory catalog. Optional filters:
// ?pricing=free|freemium|paid and ?tag=<tag>.
func ListDirectories(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `
		SELECT id, name, slug, url, description, domain_rating, pricing, tags,
			created_at, updated_at
		FROM directories
		WHERE 1=1
	`
	params := []interface{}{}

	if pricing := c.Query("pricing"); pricing != "" {
		params = append(params, pricing)
		query += " AND pricing = $1"
	}
	if tag := c.Query("tag"); tag != "" {
		params = append(params, tag)
		if len(params) == 1 {
			query += " AND $1 = ANY(tags)"
		} else {
			query += " AND $2 = ANY(tags)"
		}
	}

	query += " ORDER BY domain_rating DESC, name ASC"

	rows, err := db.Query(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query directories", "details": err.Error()})
		return
	}
	defer rows.Close()

	directories := []models.Directory{}
	for rows.Next() {
		var d models.Directory
		err := rows.Scan(
			&d.ID, &d.Name, &d.Slug, &d.URL, &d.Description,
			&d.DomainRating, &d.Pricing, &d.Tags, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse directory data", "details": err.Error()})
			return
		}
		directories = append(directories, d)
	}

	c.JSON(http.StatusOK, gin.H{
		"directories": directories,
		"count":       len(directories),
	})
}

// GetDirectory returns one directory by slug
func GetDirectory(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	query := `
		SELECT id, name, slug, url, description, domain_rating, pricing, tags,
			created_at, updated_at
		FROM directories
		WHERE slug = $1
	`

	var d models.Directory
	err := db.QueryRow(c.Request.Context(), query, c.Param("slug")).Scan(
		&d.ID, &d.Name, &d.Slug, &d.URL, &d.Description,
		&d.DomainRating, &d.Pricing, &d.Tags, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Directory not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query directory", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, d)
}

// SubmitDirectory records a community-suggested directory for admin review
func SubmitDirectory(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var req SubmitDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if _, err := urlnorm.Normalize(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL", "details": err.Error()})
		return
	}

	var submitterEmail *string
	if email, ok := middleware.GetAuthEmail(c); ok {
		submitterEmail = &email
	}

	id := uuid.New()
	_, err := db.Exec(c.Request.Context(), `
		INSERT INTO submitted_directories (id, name, url, description, submitter_email)
		VALUES ($1, $2, $3, $4, $5)
	`, id, req.Name, req.URL, req.Description, submitterEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit directory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"status":  models.ReviewStatusPending,
		"message": "Directory submitted for review",
	})
}
