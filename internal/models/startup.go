package models

import (
	"time"

	"github.com/google/uuid"
)

// Startup statuses. A startup moves pending → approved → launched, or to
// rejected at review time.
const (
	StartupStatusPending  = "pending"
	StartupStatusApproved = "approved"
	StartupStatusRejected = "rejected"
	StartupStatusLaunched = "launched"
)

// Startup represents a submitted product listing
type Startup struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	OwnerID         *uuid.UUID  `json:"owner_id,omitempty" db:"owner_id"`
	Name            string      `json:"name" db:"name"`
	Slug            string      `json:"slug" db:"slug"`
	Tagline         string      `json:"tagline" db:"tagline"`
	Description     string      `json:"description" db:"description"`
	WebsiteURL      string      `json:"website_url" db:"website_url"`
	NormalizedURL   string      `json:"-" db:"normalized_url"`
	Status          string      `json:"status" db:"status"`
	RejectionReason *string     `json:"rejection_reason,omitempty" db:"rejection_reason"`
	UpvoterIDs      []uuid.UUID `json:"-" db:"upvoter_ids"`
	IsPremium       bool        `json:"is_premium" db:"is_premium"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// StartupListResponse is the simplified response for startup lists
type StartupListResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Tagline    string    `json:"tagline"`
	WebsiteURL string    `json:"website_url"`
	Status     string    `json:"status"`
	Upvotes    int       `json:"upvotes"`
	IsPremium  bool      `json:"is_premium"`
}

// StartupDetailResponse includes more information for single startup requests
type StartupDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	WebsiteURL  string    `json:"website_url"`
	Status      string    `json:"status"`
	Upvotes     int       `json:"upvotes"`
	Upvoted     bool      `json:"upvoted"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToListResponse converts Startup to StartupListResponse
func (s *Startup) ToListResponse() StartupListResponse {
	return StartupListResponse{
		ID:         s.ID,
		Name:       s.Name,
		Slug:       s.Slug,
		Tagline:    s.Tagline,
		WebsiteURL: s.WebsiteURL,
		Status:     s.Status,
		Upvotes:    len(s.UpvoterIDs),
		IsPremium:  s.IsPremium,
	}
}

// ToDetailResponse converts Startup to StartupDetailResponse. viewerID is
// uuid.Nil for anonymous viewers.
func (s *Startup) ToDetailResponse(viewerID uuid.UUID) StartupDetailResponse {
	upvoted := false
	for _, id := range s.UpvoterIDs {
		if id == viewerID {
			upvoted = true
			break
		}
	}
	return StartupDetailResponse{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Tagline:     s.Tagline,
		Description: s.Description,
		WebsiteURL:  s.WebsiteURL,
		Status:      s.Status,
		Upvotes:     len(s.UpvoterIDs),
		Upvoted:     upvoted,
		IsPremium:   s.IsPremium,
		CreatedAt:   s.CreatedAt,
	}
}
