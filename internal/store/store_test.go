package store_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/repository"
	"github.com/alexanderramin/tripplan/internal/store"
	"github.com/alexanderramin/tripplan/internal/testutil"
)

func setup(t *testing.T, opts ...store.Option) (*store.Store, repository.PreferenceRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)
	return store.New(prefs, opts...), prefs
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	tasks := testutil.TripFixture()
	tasks[2].Notes = "remember adapters"
	tasks[2].Done = true
	require.NoError(t, s.SaveAll(ctx, tasks))

	assert.Equal(t, tasks, s.LoadAll(ctx))
}

func TestStore_LoadAll_AbsentSlotIsEmpty(t *testing.T) {
	s, _ := setup(t)

	got := s.LoadAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_LoadAll_DegradesToEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":         "not-json",
		"object":           `{"id":1}`,
		"array of numbers": `[1,2,3]`,
		"wrong type":       `[{"id":"one"}]`,
		"fractional id":    `[{"id":1.5}]`,
		"trailing data":    `[] []`,
		"truncated":        `[{"id":1`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			s, prefs := setup(t, store.WithLogger(logger))
			ctx := context.Background()
			require.NoError(t, prefs.Put(ctx, store.DefaultNamespace, store.TasksKey, blob))

			assert.Empty(t, s.LoadAll(ctx))
			assert.Contains(t, logs.String(), "discarding unreadable task blob")
		})
	}
}

func TestStore_LoadAll_NullAndBlank(t *testing.T) {
	for _, blob := range []string{"null", "", "   \n", "[]"} {
		s, prefs := setup(t)
		ctx := context.Background()
		require.NoError(t, prefs.Put(ctx, store.DefaultNamespace, store.TasksKey, blob))
		assert.Empty(t, s.LoadAll(ctx), "blob %q", blob)
	}
}

func TestStore_LoadAll_MissingAndUnknownFields(t *testing.T) {
	s, prefs := setup(t)
	ctx := context.Background()
	blob := `[{"id":4,"title":"Visa","colour":"red"},{"title":"No id","budget":12.5,"done":true}]`
	require.NoError(t, prefs.Put(ctx, store.DefaultNamespace, store.TasksKey, blob))

	got := s.LoadAll(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Task{ID: 4, Title: "Visa"}, got[0])
	assert.Equal(t, domain.Task{Title: "No id", Budget: 12.5, Done: true}, got[1])
}

func TestStore_LoadAll_KeepsUnknownCategoryAndIntegralFloatID(t *testing.T) {
	s, prefs := setup(t)
	ctx := context.Background()
	blob := `[{"id":3.0,"title":"Train","category":"Rail","budget":1e2,"notes":null}]`
	require.NoError(t, prefs.Put(ctx, store.DefaultNamespace, store.TasksKey, blob))

	got := s.LoadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, domain.Category("Rail"), got[0].Category)
	assert.Equal(t, 100.0, got[0].Budget)
	assert.Empty(t, got[0].Notes)
}

func TestStore_SaveAll_NilWritesEmptyArray(t *testing.T) {
	s, prefs := setup(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, nil))
	raw, err := prefs.Get(ctx, store.DefaultNamespace, store.TasksKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStore_SaveAll_KeepsDuplicateIDs(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	tasks := []domain.Task{
		testutil.NewTestTask("a", testutil.WithID(2)),
		testutil.NewTestTask("b", testutil.WithID(2)),
	}
	require.NoError(t, s.SaveAll(ctx, tasks))
	assert.Len(t, s.LoadAll(ctx), 2)
}

func TestStore_SaveAll_OverwritesPrevious(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, testutil.TripFixture()))
	only := []domain.Task{testutil.NewTestTask("only", testutil.WithID(9), testutil.WithNotes("window seat"))}
	require.NoError(t, s.SaveAll(ctx, only))

	assert.Equal(t, only, s.LoadAll(ctx))
}

func TestStore_NamespaceIsolation(t *testing.T) {
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)
	a := store.New(prefs)
	b := store.New(prefs, store.WithNamespace("other_trip"))
	ctx := context.Background()

	require.NoError(t, a.SaveAll(ctx, testutil.TripFixture()))
	assert.Empty(t, b.LoadAll(ctx))
	assert.Equal(t, "other_trip", b.Namespace())
}

func TestStore_NextID(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	next, err := s.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	tasks := []domain.Task{
		testutil.NewTestTask("a", testutil.WithID(1)),
		testutil.NewTestTask("b", testutil.WithID(3)),
		testutil.NewTestTask("c", testutil.WithID(7)),
	}
	require.NoError(t, s.SaveAll(ctx, tasks))
	next, err = s.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	require.NoError(t, s.SaveAll(ctx, append(tasks, testutil.NewTestTask("d", testutil.WithID(store.MaxTaskID)))))
	_, err = s.NextID(ctx)
	assert.ErrorIs(t, err, store.ErrIDsExhausted)
}

func TestStore_SaveAll_RefusesIDsDecodeWouldReject(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, testutil.TripFixture()))

	err := s.SaveAll(ctx, []domain.Task{testutil.NewTestTask("big", testutil.WithID(store.MaxTaskID+1))})
	assert.Error(t, err)
	assert.Equal(t, testutil.TripFixture(), s.LoadAll(ctx))
}

type brokenPrefs struct{ repository.PreferenceRepo }

func (brokenPrefs) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (brokenPrefs) Put(context.Context, string, string, string) error {
	return errors.New("disk on fire")
}

func TestStore_BackendFailures(t *testing.T) {
	s := store.New(brokenPrefs{})
	ctx := context.Background()

	assert.Empty(t, s.LoadAll(ctx))
	err := s.SaveAll(ctx, testutil.TripFixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving tasks")
}

func TestStore_WithRepo(t *testing.T) {
	s, _ := setup(t)
	other := testutil.NewTestDB(t)
	bound := s.WithRepo(repository.NewSQLitePreferenceRepo(other))
	ctx := context.Background()

	require.NoError(t, bound.SaveAll(ctx, testutil.TripFixture()))
	assert.Empty(t, s.LoadAll(ctx))
	assert.Len(t, bound.LoadAll(ctx), 3)
}
