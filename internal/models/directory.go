package models

import (
	"time"

	"github.com/google/uuid"
)

// Directory is a curated listing target users can submit their product to
type Directory struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	URL          string    `json:"url" db:"url"`
	Description  string    `json:"description" db:"description"`
	DomainRating int       `json:"domain_rating" db:"domain_rating"`
	Pricing      string    `json:"pricing" db:"pricing"`
	Tags         []string  `json:"tags" db:"tags"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LaunchListEntry is a directory annotated with the viewer's checklist state
type LaunchListEntry struct {
	Directory
	Checked bool `json:"checked"`
}
