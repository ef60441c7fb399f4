package testutil

import (
	"sync/atomic"

	"github.com/alexanderramin/tripplan/internal/domain"
)

var testTaskIDCounter atomic.Int64

// TaskOption customizes a fixture task.
type TaskOption func(*domain.Task)

func WithID(id int) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithCategory(c domain.Category) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithDate(date string) TaskOption {
	return func(t *domain.Task) {
		t.Date = date
	}
}

func WithBudget(b float64) TaskOption {
	return func(t *domain.Task) {
		t.Budget = b
	}
}

func WithImportant() TaskOption {
	return func(t *domain.Task) {
		t.Important = true
	}
}

func WithDone() TaskOption {
	return func(t *domain.Task) {
		t.Done = true
	}
}

func WithNotes(notes string) TaskOption {
	return func(t *domain.Task) {
		t.Notes = notes
	}
}

// NewTestTask returns an Other-category task dated 01/06/2025 with a
// process-unique id unless WithID overrides it.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:       int(testTaskIDCounter.Add(1)),
		Title:    title,
		Category: domain.CategoryOther,
		Date:     "01/06/2025",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// TripFixture is the three-task collection used across list and search tests.
func TripFixture() []domain.Task {
	return []domain.Task{
		NewTestTask("Flight to Paris", WithID(1), WithCategory(domain.CategoryFlight), WithDate("10/05/2024"), WithBudget(450)),
		NewTestTask("Book Hotel", WithID(2), WithCategory(domain.CategoryHotel), WithDate("11/05/2024"), WithBudget(600), WithImportant()),
		NewTestTask("Pack bags", WithID(3), WithCategory(domain.CategoryPacking), WithDate("09/05/2025")),
	}
}
