package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the application database. Uniqueness that the
// handlers rely on (slugs, normalized URLs, webhook event IDs, one launch
// list row per user+directory) is enforced here rather than by
// read-then-write checks.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	is_admin BOOLEAN NOT NULL DEFAULT false,
	is_premium BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS login_tokens (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL,
	token_hash TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	consumed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS startups (
	id UUID PRIMARY KEY,
	owner_id UUID REFERENCES users(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	tagline TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	website_url TEXT NOT NULL,
	normalized_url TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected', 'launched')),
	rejection_reason TEXT,
	upvoter_ids UUID[] NOT NULL DEFAULT '{}',
	is_premium BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS directories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	url TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	domain_rating INT NOT NULL DEFAULT 0,
	pricing TEXT NOT NULL DEFAULT 'free'
		CHECK (pricing IN ('free', 'freemium', 'paid')),
	tags TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS submitted_directories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	submitter_email TEXT,
	status TEXT NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	reviewed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS launch_weeks (
	id UUID PRIMARY KEY,
	start_date TIMESTAMPTZ NOT NULL UNIQUE,
	end_date TIMESTAMPTZ NOT NULL,
	max_slots INT NOT NULL DEFAULT 50,
	startup_ids UUID[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (start_date < end_date)
);

CREATE TABLE IF NOT EXISTS comments (
	id UUID PRIMARY KEY,
	startup_id UUID NOT NULL REFERENCES startups(id) ON DELETE CASCADE,
	author_id UUID NOT NULL REFERENCES users(id),
	body TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS launch_list_items (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	directory_id UUID NOT NULL REFERENCES directories(id) ON DELETE CASCADE,
	checked BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, directory_id)
);

CREATE TABLE IF NOT EXISTS blog_posts (
	id UUID PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	content_html TEXT NOT NULL,
	source_url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS webhook_events (
	id UUID PRIMARY KEY,
	provider TEXT NOT NULL,
	event_id TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (provider, event_id)
);

CREATE INDEX IF NOT EXISTS idx_startups_status ON startups(status);
CREATE INDEX IF NOT EXISTS idx_comments_startup ON comments(startup_id);
CREATE INDEX IF NOT EXISTS idx_login_tokens_email ON login_tokens(email);
`

// EnsureSchema applies the DDL. Statements are idempotent so this runs on
// every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
