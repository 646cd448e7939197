package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/slugify"
	"github.com/launchlist/launchlist-go/internal/telegraph"
)

type ImportPostRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ListBlogPosts returns published posts, newest first
func ListBlogPosts(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT id, slug, title, content_html, source_url, created_at
		FROM blog_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query posts", "details": err.Error()})
		return
	}
	defer rows.Close()

	posts := []models.BlogPostListResponse{}
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.ContentHTML, &p.SourceURL, &p.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse post data", "details": err.Error()})
			return
		}
		posts = append(posts, p.ToListResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

// GetBlogPost returns one post by slug
func GetBlogPost(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	var p models.BlogPost
	err := db.QueryRow(c.Request.Context(), `
		SELECT id, slug, title, content_html, source_url, created_at
		FROM blog_posts
		WHERE slug = $1
	`, c.Param("slug")).Scan(&p.ID, &p.Slug, &p.Title, &p.ContentHTML, &p.SourceURL, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query post", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// ImportBlogPost scrapes a Telegraph page and stores it as a post
func ImportBlogPost(client *telegraph.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.GetDB(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
			return
		}

		var req ImportPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		page, err := client.Fetch(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to import page", "details": err.Error()})
			return
		}
		if page.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Page has no title"})
			return
		}

		post := models.BlogPost{
			ID:          uuid.New(),
			Slug:        slugify.Make(page.Title),
			Title:       page.Title,
			ContentHTML: page.ContentHTML,
			SourceURL:   &req.URL,
		}

		err = db.QueryRow(c.Request.Context(), `
			INSERT INTO blog_posts (id, slug, title, content_html, source_url)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE
				SET title = EXCLUDED.title,
					content_html = EXCLUDED.content_html,
					source_url = EXCLUDED.source_url
			RETURNING id, created_at
		`, post.ID, post.Slug, post.Title, post.ContentHTML, post.SourceURL).Scan(&post.ID, &post.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store post", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, post.ToListResponse())
	}
}
