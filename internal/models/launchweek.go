package models

import (
	"time"

	"github.com/google/uuid"
)

// LaunchWeek is a fixed 7-day calendar window during which a bounded number
// of startups may be publicly listed and upvoted. Weeks are pre-populated in
// bulk and mutated only by appending a startup ID at launch time.
type LaunchWeek struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	StartDate  time.Time   `json:"start_date" db:"start_date"`
	EndDate    time.Time   `json:"end_date" db:"end_date"`
	MaxSlots   int         `json:"max_slots" db:"max_slots"`
	StartupIDs []uuid.UUID `json:"-" db:"startup_ids"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// LaunchWeekResponse annotates a week with availability
type LaunchWeekResponse struct {
	ID             uuid.UUID `json:"id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	MaxSlots       int       `json:"max_slots"`
	LaunchCount    int       `json:"launch_count"`
	AvailableSlots int       `json:"available_slots"`
	FreeAvailable  bool      `json:"free_available"`
}

// AvailableSlots returns remaining capacity, never negative in well-formed
// data but clamped anyway.
func (w *LaunchWeek) AvailableSlots() int {
	n := w.MaxSlots - len(w.StartupIDs)
	if n < 0 {
		return 0
	}
	return n
}

// ToResponse converts LaunchWeek to LaunchWeekResponse
func (w *LaunchWeek) ToResponse() LaunchWeekResponse {
	avail := w.AvailableSlots()
	return LaunchWeekResponse{
		ID:             w.ID,
		StartDate:      w.StartDate,
		EndDate:        w.EndDate,
		MaxSlots:       w.MaxSlots,
		LaunchCount:    len(w.StartupIDs),
		AvailableSlots: avail,
		FreeAvailable:  avail > 0,
	}
}
