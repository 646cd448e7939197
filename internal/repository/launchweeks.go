package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/launchlist/launchlist-go/internal/models"
)

var (
	ErrWeekNotFound  = errors.New("launch week not found")
	ErrWeekFull      = errors.New("launch week has no free slots")
	ErrNotApproved   = errors.New("startup is not approved for launch")
	ErrAlreadyInWeek = errors.New("startup is already launched into this week")
)

type LaunchWeekRepository struct {
	db *pgxpool.Pool
}

func NewLaunchWeekRepository(db *pgxpool.Pool) *LaunchWeekRepository {
	return &LaunchWeekRepository{db: db}
}

// ListAll returns every launch week ordered by start date
func (r *LaunchWeekRepository) ListAll(ctx context.Context) ([]models.LaunchWeek, error) {
	query := `
		SELECT id, start_date, end_date, max_slots, startup_ids, created_at
		FROM launch_weeks
		ORDER BY start_date ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weeks := []models.LaunchWeek{}
	for rows.Next() {
		var w models.LaunchWeek
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate, &w.MaxSlots, &w.StartupIDs, &w.CreatedAt); err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}

	return weeks, rows.Err()
}

// GetByID retrieves one launch week
func (r *LaunchWeekRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LaunchWeek, error) {
	query := `
		SELECT id, start_date, end_date, max_slots, startup_ids, created_at
		FROM launch_weeks
		WHERE id = $1
	`

	var w models.LaunchWeek
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.StartDate, &w.EndDate, &w.MaxSlots, &w.StartupIDs, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	return &w, nil
}

// Assign records a startup launch into a week and flips the startup to
// launched, in one transaction. Capacity and duplicate membership are
// enforced by the conditional UPDATE itself, so two racing launches into a
// week with one slot left cannot both succeed.
func (r *LaunchWeekRepository) Assign(ctx context.Context, weekID, startupID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE startups
		SET status = 'launched', updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
	`, startupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Missing or in the wrong state; tell the caller which
		var status string
		if lookupErr := tx.QueryRow(ctx,
			"SELECT status FROM startups WHERE id = $1", startupID,
		).Scan(&status); lookupErr != nil {
			return ErrStartupNotFound
		}
		return ErrNotApproved
	}

	tag, err = tx.Exec(ctx, `
		UPDATE launch_weeks
		SET startup_ids = array_append(startup_ids, $1)
		WHERE id = $2
			AND cardinality(startup_ids) < max_slots
			AND NOT ($1 = ANY(startup_ids))
	`, startupID, weekID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		week, lookupErr := r.getByIDTx(ctx, tx, weekID)
		if lookupErr != nil {
			return ErrWeekNotFound
		}
		for _, id := range week.StartupIDs {
			if id == startupID {
				return ErrAlreadyInWeek
			}
		}
		return ErrWeekFull
	}

	return tx.Commit(ctx)
}

func (r *LaunchWeekRepository) getByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.LaunchWeek, error) {
	var w models.LaunchWeek
	err := tx.QueryRow(ctx, `
		SELECT id, start_date, end_date, max_slots, startup_ids, created_at
		FROM launch_weeks WHERE id = $1
	`, id).Scan(&w.ID, &w.StartDate, &w.EndDate, &w.MaxSlots, &w.StartupIDs, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SeedWeeks bulk-inserts pre-generated weeks. Existing weeks (matched on
// start_date) are left untouched, so reseeding is safe.
func (r *LaunchWeekRepository) SeedWeeks(ctx context.Context, weeks []models.LaunchWeek) (int, error) {
	inserted := 0
	for _, w := range weeks {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		tag, err := r.db.Exec(ctx, `
			INSERT INTO launch_weeks (id, start_date, end_date, max_slots)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (start_date) DO NOTHING
		`, w.ID, w.StartDate, w.EndDate, w.MaxSlots)
		if err != nil {
			return inserted, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// RankedStartups returns the launched startups of a week with their vote
// counts, for the ranking projection.
func (r *LaunchWeekRepository) RankedStartups(ctx context.Context, weekID uuid.UUID) ([]models.Startup, error) {
	query := `
		SELECT s.id, s.owner_id, s.name, s.slug, s.tagline, s.description,
			s.website_url, s.normalized_url, s.status, s.rejection_reason,
			s.upvoter_ids, s.is_premium, s.created_at, s.updated_at
		FROM launch_weeks w
		JOIN startups s ON s.id = ANY(w.startup_ids)
		WHERE w.id = $1
		ORDER BY s.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	startups := []models.Startup{}
	for rows.Next() {
		var s models.Startup
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Tagline, &s.Description,
			&s.WebsiteURL, &s.NormalizedURL, &s.Status, &s.RejectionReason,
			&s.UpvoterIDs, &s.IsPremium, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		startups = append(startups, s)
	}

	return startups, rows.Err()
}
