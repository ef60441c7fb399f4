package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/store"
	"github.com/alexanderramin/tripplan/internal/tasklist"
	"github.com/alexanderramin/tripplan/internal/testutil"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func setupTaskService(t *testing.T, seed []domain.Task) (TaskService, *store.Store, *recordingObserver) {
	t.Helper()
	database, st := testutil.NewTestStore(t, seed)
	obs := &recordingObserver{}
	return NewTaskService(st, testutil.NewTestUoW(database), obs), st, obs
}

func TestCreate_AllocatesNextID(t *testing.T) {
	svc, st, obs := setupTaskService(t, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, TaskInput{Title: "Flight to Lisbon", Category: domain.CategoryFlight, Date: "01/07/2025", Budget: 210})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := svc.Create(ctx, TaskInput{Title: "Hostel", Category: domain.CategoryHotel, Date: "02/07/2025"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	stored := st.LoadAll(ctx)
	require.Len(t, stored, 2)
	assert.Equal(t, first, stored[0])
	next, err := st.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-task", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["id"])
}

func TestCreate_AfterGapUsesMaxPlusOne(t *testing.T) {
	seed := []domain.Task{
		testutil.NewTestTask("a", testutil.WithID(1)),
		testutil.NewTestTask("b", testutil.WithID(7)),
		testutil.NewTestTask("c", testutil.WithID(3)),
	}
	svc, _, _ := setupTaskService(t, seed)

	task, err := svc.Create(context.Background(), TaskInput{Title: "d", Category: domain.CategoryOther, Date: "01/01/2025"})
	require.NoError(t, err)
	assert.Equal(t, 8, task.ID)
}

func TestDelete_ThenReload(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))

	got := st.LoadAll(ctx)
	fixture := testutil.TripFixture()
	assert.Equal(t, []domain.Task{fixture[0], fixture[2]}, got)
}

func TestDelete_UnknownID(t *testing.T) {
	svc, st, obs := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	err := svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Len(t, st.LoadAll(ctx), 3)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestUpdate_CategoryThenReload(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	before, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	in := TaskInput{
		Title:     before.Title,
		Category:  domain.CategoryPacking,
		Date:      before.Date,
		Budget:    before.Budget,
		Important: before.Important,
		Done:      before.Done,
		Notes:     before.Notes,
	}
	updated, err := svc.Update(ctx, 1, in)
	require.NoError(t, err)

	reloaded := st.LoadAll(ctx)
	want := before
	want.Category = domain.CategoryPacking
	assert.Equal(t, want, updated)
	assert.Equal(t, want, reloaded[0])
	assert.Equal(t, testutil.TripFixture()[1:], reloaded[1:])
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _, _ := setupTaskService(t, testutil.TripFixture())
	_, err := svc.Update(context.Background(), 42, TaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestPatch_KeepsUnsetFields(t *testing.T) {
	svc, _, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	notes := "aisle seat"
	done := true
	got, err := svc.Patch(ctx, 1, TaskPatch{Notes: &notes, Done: &done})
	require.NoError(t, err)

	want := testutil.TripFixture()[0]
	want.Notes = notes
	want.Done = true
	assert.Equal(t, want, got)
}

func TestToggleDone(t *testing.T) {
	svc, _, obs := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	got, err := svc.ToggleDone(ctx, 3)
	require.NoError(t, err)
	assert.True(t, got.Done)

	got, err = svc.ToggleDone(ctx, 3)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Equal(t, "toggle-done", obs.events[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := setupTaskService(t, nil)
	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSearch(t *testing.T) {
	svc, _, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	got, err := svc.Search(ctx, "HOTEL")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Book Hotel", got[0].Title)

	got, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDeleteAt_ResolvesFilteredRow(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	view := tasklist.New(nil)
	view.Replace(st.LoadAll(ctx))
	view.Filter("pack")

	// Row 0 of the filtered view is task 3, not the first stored task.
	removed, err := svc.DeleteAt(ctx, view, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, removed.ID)

	assert.Equal(t, "pack", view.Query())
	assert.Zero(t, view.Count())
	assert.Len(t, view.Full(), 2)
	_, ok := store.FindByID(st.LoadAll(ctx), 1)
	assert.True(t, ok)
}

func TestDeleteAt_OutOfRange(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()
	view := tasklist.New(nil)
	view.Replace(st.LoadAll(ctx))

	_, err := svc.DeleteAt(ctx, view, 3)
	assert.ErrorIs(t, err, tasklist.ErrIndexOutOfRange)
	assert.Len(t, st.LoadAll(ctx), 3)
}

func TestImport_AppendRenumbersCollisions(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	incoming := []domain.Task{
		testutil.NewTestTask("Car rental", testutil.WithID(2)),
		testutil.NewTestTask("Ferry", testutil.WithID(10)),
		testutil.NewTestTask("Adapter", testutil.WithID(0)),
	}
	res, err := svc.Import(ctx, incoming, false)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 3, Renumbered: 2}, res)

	stored := st.LoadAll(ctx)
	require.Len(t, stored, 6)
	ids := []int{stored[3].ID, stored[4].ID, stored[5].ID}
	assert.Equal(t, []int{11, 10, 12}, ids)
}

func TestCreate_RefusesIDPastStoredRange(t *testing.T) {
	seed := []domain.Task{
		testutil.NewTestTask("a", testutil.WithID(1)),
		testutil.NewTestTask("b", testutil.WithID(store.MaxTaskID)),
	}
	svc, st, obs := setupTaskService(t, seed)
	ctx := context.Background()

	_, err := svc.Create(ctx, TaskInput{Title: "c", Category: domain.CategoryOther, Date: "01/07/2025"})
	assert.ErrorIs(t, err, store.ErrIDsExhausted)

	assert.Equal(t, seed, st.LoadAll(ctx))
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestImport_RefusesRenumberPastStoredRange(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	incoming := []domain.Task{
		testutil.NewTestTask("Top", testutil.WithID(store.MaxTaskID)),
		testutil.NewTestTask("Clash", testutil.WithID(2)),
	}
	_, err := svc.Import(ctx, incoming, false)
	assert.ErrorIs(t, err, store.ErrIDsExhausted)
	assert.Equal(t, testutil.TripFixture(), st.LoadAll(ctx))
}

func TestImport_KeepsMaxStoredID(t *testing.T) {
	svc, st, _ := setupTaskService(t, nil)
	ctx := context.Background()

	_, err := svc.Import(ctx, []domain.Task{testutil.NewTestTask("Top", testutil.WithID(store.MaxTaskID))}, false)
	require.NoError(t, err)

	stored := st.LoadAll(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, store.MaxTaskID, stored[0].ID)
}

func TestImport_Replace(t *testing.T) {
	svc, st, _ := setupTaskService(t, testutil.TripFixture())
	ctx := context.Background()

	incoming := []domain.Task{
		testutil.NewTestTask("x", testutil.WithID(5)),
		testutil.NewTestTask("y", testutil.WithID(5)),
	}
	res, err := svc.Import(ctx, incoming, true)
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Equal(t, 1, res.Renumbered)

	stored := st.LoadAll(ctx)
	require.Len(t, stored, 2)
	assert.Equal(t, 5, stored[0].ID)
	assert.Equal(t, 6, stored[1].ID)
}

func TestSummary(t *testing.T) {
	seed := append(testutil.TripFixture(),
		testutil.NewTestTask("Train", testutil.WithID(4), testutil.WithCategory("Rail"), testutil.WithBudget(40), testutil.WithDone()),
	)
	svc, _, _ := setupTaskService(t, seed)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 1, sum.Done)
	assert.Equal(t, 1, sum.Important)
	assert.InDelta(t, 1090.0, sum.Budget, 0.001)
	assert.InDelta(t, 1050.0, sum.Remaining, 0.001)

	require.Len(t, sum.ByCategory, 4)
	assert.Equal(t, domain.CategoryOther, sum.ByCategory[3].Category)
	assert.Equal(t, 1, sum.ByCategory[3].Done)
}
