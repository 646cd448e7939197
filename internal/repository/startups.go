package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/slugify"
)

var (
	ErrStartupNotFound  = errors.New("startup not found")
	ErrDuplicateWebsite = errors.New("a startup with this website already exists")
	ErrNotLaunched      = errors.New("startup is not launched")
	ErrSlugExhausted    = errors.New("could not find a free slug")
)

const uniqueViolation = "23505"

// slugAttempts bounds the suffix retry loop. Collisions beyond two digits
// mean something is wrong with the data, not the name.
const slugAttempts = 100

type StartupRepository struct {
	db *pgxpool.Pool
}

func NewStartupRepository(db *pgxpool.Pool) *StartupRepository {
	return &StartupRepository{db: db}
}

// Create inserts a startup, deriving a unique slug from its name. Slug
// uniqueness is enforced by the database unique index: on collision the
// insert is retried with -1, -2, ... suffixes rather than checked up front,
// so concurrent submissions with the same name cannot race each other.
func (r *StartupRepository) Create(ctx context.Context, s *models.Startup) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	base := slugify.Make(s.Name)

	query := `
		INSERT INTO startups (id, owner_id, name, slug, tagline, description,
			website_url, normalized_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := slugify.WithSuffix(base, attempt)
		err := r.db.QueryRow(ctx, query,
			s.ID, s.OwnerID, s.Name, candidate, s.Tagline, s.Description,
			s.WebsiteURL, s.NormalizedURL, s.Status,
		).Scan(&s.CreatedAt, &s.UpdatedAt)

		if err == nil {
			s.Slug = candidate
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "startups_normalized_url_key" {
				return ErrDuplicateWebsite
			}
			// Slug taken, try the next suffix
			continue
		}
		return err
	}

	return ErrSlugExhausted
}

// GetBySlug retrieves a startup by slug
func (r *StartupRepository) GetBySlug(ctx context.Context, slug string) (*models.Startup, error) {
	query := `
		SELECT id, owner_id, name, slug, tagline, description, website_url,
			normalized_url, status, rejection_reason, upvoter_ids, is_premium,
			created_at, updated_at
		FROM startups
		WHERE slug = $1
	`

	var s models.Startup
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Tagline, &s.Description,
		&s.WebsiteURL, &s.NormalizedURL, &s.Status, &s.RejectionReason,
		&s.UpvoterIDs, &s.IsPremium, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}

	return &s, nil
}

// ToggleUpvote flips the voter's membership in the startup's upvoter set as
// one atomic UPDATE: present → removed, absent → appended. The returned
// values reflect the row after the toggle. Startups that are not launched
// return ErrNotLaunched.
func (r *StartupRepository) ToggleUpvote(ctx context.Context, slug string, voterID uuid.UUID) (upvoted bool, count int, err error) {
	query := `
		UPDATE startups
		SET upvoter_ids = CASE
				WHEN $1 = ANY(upvoter_ids) THEN array_remove(upvoter_ids, $1)
				ELSE array_append(upvoter_ids, $1)
			END,
			updated_at = NOW()
		WHERE slug = $2 AND status = 'launched'
		RETURNING $1 = ANY(upvoter_ids), cardinality(upvoter_ids)
	`

	err = r.db.QueryRow(ctx, query, voterID, slug).Scan(&upvoted, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing from not-launched for the caller
			var status string
			if lookupErr := r.db.QueryRow(ctx,
				"SELECT status FROM startups WHERE slug = $1", slug,
			).Scan(&status); lookupErr == nil {
				return false, 0, ErrNotLaunched
			}
			return false, 0, ErrStartupNotFound
		}
		return false, 0, err
	}

	return upvoted, count, nil
}
