package launchweek

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func week(startOffset, endOffset int, now time.Time) models.LaunchWeek {
	return models.LaunchWeek{
		ID:        uuid.New(),
		StartDate: now.AddDate(0, 0, startOffset),
		EndDate:   now.AddDate(0, 0, endOffset),
		MaxSlots:  50,
	}
}

func TestResolveClassification(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	w1 := week(-14, -8, now)
	w2 := week(-7, -1, now)
	w3 := week(1, 7, now)

	windows := Resolve(now, []models.LaunchWeek{w1, w2, w3})

	assert.Nil(t, windows.Current)
	require.NotNil(t, windows.Last)
	assert.Equal(t, w2.ID, windows.Last.ID)
	require.NotNil(t, windows.Next)
	assert.Equal(t, w3.ID, windows.Next.ID)
}

func TestResolveCurrentWeek(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	current := week(-3, 3, now)
	next := week(4, 10, now)
	later := week(11, 17, now)

	windows := Resolve(now, []models.LaunchWeek{later, current, next})

	require.NotNil(t, windows.Current)
	assert.Equal(t, current.ID, windows.Current.ID)
	require.NotNil(t, windows.Next)
	assert.Equal(t, next.ID, windows.Next.ID, "next must be the earliest future week")
	assert.Nil(t, windows.Last)
}

func TestResolveBoundariesInclusive(t *testing.T) {
	now := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	w := models.LaunchWeek{ID: uuid.New(), StartDate: now, EndDate: now.AddDate(0, 0, 7)}

	windows := Resolve(now, []models.LaunchWeek{w})
	require.NotNil(t, windows.Current, "startDate == now counts as current")

	windows = Resolve(w.EndDate, []models.LaunchWeek{w})
	require.NotNil(t, windows.Current, "endDate == now counts as current")
}

func TestResolveEmpty(t *testing.T) {
	windows := Resolve(time.Now(), nil)
	assert.Nil(t, windows.Current)
	assert.Nil(t, windows.Next)
	assert.Nil(t, windows.Last)
}

func TestCapacityArithmetic(t *testing.T) {
	w := models.LaunchWeek{MaxSlots: 50}
	for i := 0; i < 50; i++ {
		w.StartupIDs = append(w.StartupIDs, uuid.New())
	}

	resp := w.ToResponse()
	assert.Equal(t, 0, resp.AvailableSlots)
	assert.False(t, resp.FreeAvailable)

	w.StartupIDs = w.StartupIDs[:49]
	resp = w.ToResponse()
	assert.Equal(t, 1, resp.AvailableSlots)
	assert.True(t, resp.FreeAvailable)
}

func TestPastMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday rolls back to monday",
			in:   time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday stays monday",
			in:   time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls back six days",
			in:   time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PastMonday(tt.in))
		})
	}
}

func TestSeedContiguousWeeks(t *testing.T) {
	from := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	weeks := Seed(from, 52, 50)

	require.Len(t, weeks, 52)
	assert.Equal(t, time.Monday, weeks[0].StartDate.Weekday())
	assert.True(t, weeks[0].StartDate.Before(from))

	for i, w := range weeks {
		assert.True(t, w.StartDate.Before(w.EndDate), "week %d has startDate < endDate", i)
		assert.Equal(t, 50, w.MaxSlots)
		if i > 0 {
			gap := w.StartDate.Sub(weeks[i-1].EndDate)
			assert.Equal(t, time.Second, gap, "week %d must start right after week %d ends", i, i-1)
		}
	}
}
