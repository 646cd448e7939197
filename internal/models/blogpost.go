package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is an article, usually imported from a Telegraph page
type BlogPost struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	ContentHTML string    `json:"content_html" db:"content_html"`
	SourceURL   *string   `json:"source_url,omitempty" db:"source_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// BlogPostListResponse omits the body for index pages
type BlogPostListResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ToListResponse converts BlogPost to BlogPostListResponse
func (p *BlogPost) ToListResponse() BlogPostListResponse {
	return BlogPostListResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
	}
}
