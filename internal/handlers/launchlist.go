package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/models"
)

// GetLaunchList returns the caller's checklist: every saved directory with
// its checked state.
func GetLaunchList(c *gin.Context) {
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
		SELECT d.id, d.name, d.slug, d.url, d.description, d.domain_rating,
			d.pricing, d.tags, d.created_at, d.updated_at, l.checked
		FROM launch_list_items l
		JOIN directories d ON d.id = l.directory_id
		WHERE l.user_id = $1
		ORDER BY d.domain_rating DESC, d.name ASC
	`

	rows, err := db.Query(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query launch list", "details": err.Error()})
		return
	}
	defer rows.Close()

	entries := []models.LaunchListEntry{}
	for rows.Next() {
		var e models.LaunchListEntry
		err := rows.Scan(
			&e.ID, &e.Name, &e.Slug, &e.URL, &e.Description, &e.DomainRating,
			&e.Pricing, &e.Tags, &e.CreatedAt, &e.UpdatedAt, &e.Checked,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse launch list data", "details": err.Error()})
			return
		}
		entries = append(entries, e)
	}

	c.JSON(http.StatusOK, gin.H{
		"launch_list": entries,
		"count":       len(entries),
	})
}

// AddToLaunchList saves a directory on the caller's checklist. Adding the
// same directory twice is a no-op.
func AddToLaunchList(c *gin.Context) {
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

	directoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory ID format"})
		return
	}

	var exists bool
	err = db.QueryRow(c.Request.Context(),
		"SELECT EXISTS(SELECT 1 FROM directories WHERE id = $1)", directoryID,
	).Scan(&exists)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Directory not found"})
		return
	}

	_, err = db.Exec(c.Request.Context(), `
		INSERT INTO launch_list_items (id, user_id, directory_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, directory_id) DO NOTHING
	`, uuid.New(), userID, directoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update launch list", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Directory added to launch list"})
}

// RemoveFromLaunchList deletes a directory from the caller's checklist
func RemoveFromLaunchList(c *gin.Context) {
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

	directoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory ID format"})
		return
	}

	tag, err := db.Exec(c.Request.Context(), `
		DELETE FROM launch_list_items WHERE user_id = $1 AND directory_id = $2
	`, userID, directoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update launch list", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Directory is not on your launch list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Directory removed from launch list"})
}

// ToggleChecked flips the submitted/not-submitted checkbox on one entry
func ToggleChecked(c *gin.Context) {
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

	directoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory ID format"})
		return
	}

	var checked bool
	err = db.QueryRow(c.Request.Context(), `
		UPDATE launch_list_items
		SET checked = NOT checked
		WHERE user_id = $1 AND directory_id = $2
		RETURNING checked
	`, userID, directoryID).Scan(&checked)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Directory is not on your launch list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checked": checked})
}
