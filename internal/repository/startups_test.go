package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchlist/launchlist-go/internal/models"
	"github.com/launchlist/launchlist-go/internal/testutil"
)

func TestCreateGeneratesUniqueSlugs(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewStartupRepository(pool)

	first := &models.Startup{
		Name:          "Cool App",
		WebsiteURL:    "https://coolapp.io",
		NormalizedURL: "coolapp.io",
		Status:        models.StartupStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), first))
	assert.Equal(t, "cool-app", first.Slug)

	second := &models.Startup{
		Name:          "Cool App",
		WebsiteURL:    "https://coolapp.dev",
		NormalizedURL: "coolapp.dev",
		Status:        models.StartupStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), second))
	assert.Equal(t, "cool-app-1", second.Slug)

	third := &models.Startup{
		Name:          "Cool App",
		WebsiteURL:    "https://coolapp.net",
		NormalizedURL: "coolapp.net",
		Status:        models.StartupStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), third))
	assert.Equal(t, "cool-app-2", third.Slug)
}

func TestCreateRejectsDuplicateWebsite(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewStartupRepository(pool)

	first := &models.Startup{
		Name:          "Cool App",
		WebsiteURL:    "https://coolapp.io",
		NormalizedURL: "coolapp.io",
		Status:        models.StartupStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), first))

	clone := &models.Startup{
		Name:          "Totally Different Name",
		WebsiteURL:    "http://www.coolapp.io/",
		NormalizedURL: "coolapp.io",
		Status:        models.StartupStatusPending,
	}
	err := repo.Create(context.Background(), clone)
	assert.ErrorIs(t, err, ErrDuplicateWebsite)
}

func TestGetBySlugNotFound(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewStartupRepository(pool)

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStartupNotFound)
}
