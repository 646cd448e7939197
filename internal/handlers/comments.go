package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/repository"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// ListComments returns a startup's comments, oldest first
func ListComments(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	startup, err := repository.NewStartupRepository(db).GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrStartupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query startup", "details": err.Error()})
		}
		return
	}

	query := `
		SELECT c.id, c.startup_id, c.author_id, u.name, u.email, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.startup_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := db.Query(c.Request.Context(), query, startup.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query comments", "details": err.Error()})
		return
	}
	defer rows.Close()

	comments := []models.CommentResponse{}
	for rows.Next() {
		var cr models.CommentResponse
		var name, email string
		err := rows.Scan(&cr.ID, &cr.StartupID, &cr.AuthorID, &name, &email, &cr.Body, &cr.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse comment data", "details": err.Error()})
			return
		}
		cr.AuthorName = name
		if cr.AuthorName == "" {
			cr.AuthorName = email
		}
		comments = append(comments, cr)
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateComment posts a comment on a startup
func CreateComment(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	startup, err := repository.NewStartupRepository(db).GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrStartupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query startup", "details": err.Error()})
		}
		return
	}

	comment := models.Comment{
		ID:        uuid.New(),
		StartupID: startup.ID,
		AuthorID:  userID,
		Body:      req.Body,
	}

	err = db.QueryRow(c.Request.Context(), `
		INSERT INTO comments (id, startup_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, comment.ID, comment.StartupID, comment.AuthorID, comment.Body).Scan(&comment.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment; only the author or an admin may delete
func DeleteComment(c *gin.Context) {
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

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID format"})
		return
	}

	var authorID uuid.UUID
	err = db.QueryRow(c.Request.Context(),
		"SELECT author_id FROM comments WHERE id = $1", commentID,
	).Scan(&authorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	isAdmin, _ := middleware.GetAuthIsAdmin(c)
	if authorID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	_, err = db.Exec(c.Request.Context(), "DELETE FROM comments WHERE id = $1", commentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
