package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/repository"
)

// ToggleUpvote records or retracts the caller's vote on a launched startup.
// The same user toggling twice lands back in the original state.
func ToggleUpvote(c *gin.Context) {
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

	repo := repository.NewStartupRepository(db)
	upvoted, count, err := repo.ToggleUpvote(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStartupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		case errors.Is(err, repository.ErrNotLaunched):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only launched startups can be upvoted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle upvote", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upvoted": upvoted,
		"upvotes": count,
	})
}
