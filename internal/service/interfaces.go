package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/tasklist"
)

// ErrTaskNotFound is returned when no stored task carries the requested id.
var ErrTaskNotFound = errors.New("task not found")

// TaskInput carries every user-editable field of a task.
type TaskInput struct {
	Title     string
	Category  domain.Category
	Date      string
	Budget    float64
	Important bool
	Done      bool
	Notes     string
}

// TaskPatch changes only the non-nil fields.
type TaskPatch struct {
	Title     *string
	Category  *domain.Category
	Date      *string
	Budget    *float64
	Important *bool
	Done      *bool
	Notes     *string
}

// CategorySummary aggregates the tasks of one category group.
type CategorySummary struct {
	Category domain.Category
	Count    int
	Done     int
	Budget   float64
}

// TaskSummary is the overview shown by the summary command.
type TaskSummary struct {
	Total      int
	Done       int
	Important  int
	Budget     float64
	Remaining  float64 // budget of tasks not yet done
	ByCategory []CategorySummary
}

// ImportResult reports what an import changed.
type ImportResult struct {
	Added      int
	Renumbered int
	Replaced   bool
}

type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Search(ctx context.Context, query string) ([]domain.Task, error)
	Get(ctx context.Context, id int) (domain.Task, error)
	Create(ctx context.Context, in TaskInput) (domain.Task, error)
	Update(ctx context.Context, id int, in TaskInput) (domain.Task, error)
	Patch(ctx context.Context, id int, p TaskPatch) (domain.Task, error)
	ToggleDone(ctx context.Context, id int) (domain.Task, error)
	Delete(ctx context.Context, id int) error
	// DeleteAt removes the task shown at index in view and refreshes view
	// with the stored collection, keeping its query.
	DeleteAt(ctx context.Context, view *tasklist.List, index int) (domain.Task, error)
	Summary(ctx context.Context) (TaskSummary, error)
	Import(ctx context.Context, tasks []domain.Task, replace bool) (ImportResult, error)
}
