// Package launchweek classifies launch-week windows relative to a point in
// time and generates the bulk week calendar.
package launchweek

import (
	"time"

	"github.com/launchlist/launchlist-go/internal/models"
)

// Windows holds the at-most-three classified weeks. A nil field means no
// week satisfies that category and callers must fall back (the API layer
// substitutes a 24-hour countdown when Next is nil).
type Windows struct {
	Current *models.LaunchWeek
	Next    *models.LaunchWeek
	Last    *models.LaunchWeek
}

// Resolve classifies weeks against now: current has startDate ≤ now ≤
// endDate, next is the earliest week starting after now, last is the latest
// week that ended before now. Weeks are assumed non-overlapping; with
// malformed overlapping data the first matching current wins.
func Resolve(now time.Time, weeks []models.LaunchWeek) Windows {
	var w Windows

	for i := range weeks {
		week := &weeks[i]
		switch {
		case !now.Before(week.StartDate) && !now.After(week.EndDate):
			if w.Current == nil {
				w.Current = week
			}
		case week.StartDate.After(now):
			if w.Next == nil || week.StartDate.Before(w.Next.StartDate) {
				w.Next = week
			}
		case week.EndDate.Before(now):
			if w.Last == nil || week.EndDate.After(w.Last.EndDate) {
				w.Last = week
			}
		}
	}

	return w
}

// PastMonday returns the start of the nearest Monday at or before t, in UTC.
func PastMonday(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// Seed generates n consecutive 7-day windows starting at the nearest past
// Monday relative to from. Each week ends one second before the next begins
// so the windows are contiguous and non-overlapping.
func Seed(from time.Time, n, maxSlots int) []models.LaunchWeek {
	start := PastMonday(from)
	weeks := make([]models.LaunchWeek, 0, n)

	for i := 0; i < n; i++ {
		ws := start.AddDate(0, 0, 7*i)
		weeks = append(weeks, models.LaunchWeek{
			StartDate: ws,
			EndDate:   ws.AddDate(0, 0, 7).Add(-time.Second),
			MaxSlots:  maxSlots,
		})
	}

	return weeks
}
