package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/tripplan/internal/domain"
)

// MaxTaskID is the largest id the stored blob can carry. Decode rejects
// anything above it, so allocation and Encode stop there too.
const MaxTaskID = math.MaxInt32

// minTaskID is the smallest id Decode accepts.
const minTaskID = math.MinInt32

// ErrIDsExhausted is returned when no id above the current maximum fits in
// the stored range.
var ErrIDsExhausted = errors.New("no task id left above the current maximum")

// MaxID returns the largest id in tasks, or 0 for an empty slice.
func MaxID(tasks []domain.Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// AllocateID returns the id for a task appended to tasks: one more than the
// largest id present, or 1 for an empty collection.
func AllocateID(tasks []domain.Task) (int, error) {
	return NextIDAfter(MaxID(tasks))
}

// NextIDAfter returns last+1 when it still fits in the stored range.
func NextIDAfter(last int) (int, error) {
	if last >= MaxTaskID {
		return 0, fmt.Errorf("after id %d: %w", last, ErrIDsExhausted)
	}
	return last + 1, nil
}

// FindByID returns the position of the first task carrying id.
func FindByID(tasks []domain.Task, id int) (int, bool) {
	for i, t := range tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}
