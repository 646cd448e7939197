package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a startup
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StartupID uuid.UUID `json:"startup_id" db:"startup_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentResponse includes the author's display name for rendering
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	StartupID  uuid.UUID `json:"startup_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
