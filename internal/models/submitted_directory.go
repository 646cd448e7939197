package models

import (
	"time"

	"github.com/google/uuid"
)

// Review statuses for community-submitted directories
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// SubmittedDirectory is a community-suggested directory awaiting admin review
type SubmittedDirectory struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	URL            string     `json:"url" db:"url"`
	Description    string     `json:"description" db:"description"`
	SubmitterEmail *string    `json:"submitter_email,omitempty" db:"submitter_email"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
}
