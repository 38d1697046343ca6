//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routeguide/internal/adapters/postgres"
	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/pkg/config"
)

// setupTestDB connects to the test database and creates an empty features table.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	cfg, err := config.Load("routeguide-test")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 2)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile("../../../migrations/001_features.sql")
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, "TRUNCATE features RESTART IDENTITY")
	require.NoError(t, err)

	return db
}

func TestFeatureRepo_ReplaceAllAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewFeatureRepo(db)
	ctx := context.Background()

	want := []domain.Feature{
		{Name: "Patriots Path, Mendham, NJ 07945, USA", Location: domain.Point{Latitude: 407838351, Longitude: -746143763}},
		{Name: "", Location: domain.Point{Latitude: 416855156, Longitude: -744420597}},
		{Name: "U.S. 6, Shohola, PA 18458, USA", Location: domain.Point{Latitude: 413628156, Longitude: -749015468}},
	}
	require.NoError(t, repo.ReplaceAll(ctx, want))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFeatureRepo_ListEmpty(t *testing.T) {
	db := setupTestDB(t)

	got, err := postgres.NewFeatureRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeatureRepo_ReplaceAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewFeatureRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Feature{{Name: "x"}}))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeatureRepo_ReplaceAllDropsPrevious(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewFeatureRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Feature{
		{Name: "old", Location: domain.Point{Latitude: 1, Longitude: 1}},
	}))

	want := []domain.Feature{
		{Name: "a", Location: domain.Point{Latitude: 2, Longitude: 2}},
		{Name: "b", Location: domain.Point{Latitude: -3, Longitude: 3}},
	}
	require.NoError(t, repo.ReplaceAll(ctx, want))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
