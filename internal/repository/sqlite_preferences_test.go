package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/tripplan/internal/repository"
	"github.com/alexanderramin/tripplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepo_PutAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLitePreferenceRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "trip", "tasks_json", `[{"id":1}]`))

	got, err := repo.Get(ctx, "trip", "tasks_json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestPreferenceRepo_PutReplacesValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLitePreferenceRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "trip", "tasks_json", "old"))
	require.NoError(t, repo.Put(ctx, "trip", "tasks_json", "new"))

	got, err := repo.Get(ctx, "trip", "tasks_json")
	require.NoError(t, err)
	assert.Equal(t, "new", got)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM preferences WHERE namespace = 'trip'`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPreferenceRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLitePreferenceRepo(db)

	_, err := repo.Get(context.Background(), "trip", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPreferenceRepo_NamespacesAreIsolated(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLitePreferenceRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "a", "k", "1"))
	require.NoError(t, repo.Put(ctx, "b", "k", "2"))

	got, err := repo.Get(ctx, "a", "k")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	got, err = repo.Get(ctx, "b", "k")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}
