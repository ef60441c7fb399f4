// Package tasklist holds the full task collection next to the filtered
// projection shown to the user.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tripplan/internal/domain"
)

// ErrIndexOutOfRange is returned by ItemAt for positions outside the displayed items.
var ErrIndexOutOfRange = errors.New("index out of range")

// Redrawer is told when the displayed items changed wholesale.
type Redrawer interface {
	Redraw()
}

// RedrawFunc adapts a function to Redrawer.
type RedrawFunc func()

func (f RedrawFunc) Redraw() { f() }

// List keeps the authoritative task sequence and the projection produced by
// the last filter. Displayed items are always derived from the full list.
type List struct {
	full      []domain.Task
	displayed []domain.Task
	query     string
	redrawer  Redrawer
}

// New creates an empty list. r may be nil.
func New(r Redrawer) *List {
	return &List{
		full:      []domain.Task{},
		displayed: []domain.Task{},
		redrawer:  r,
	}
}

// Replace installs tasks as the full list and shows all of them, dropping
// any active query.
func (l *List) Replace(tasks []domain.Task) {
	l.full = clone(tasks)
	l.displayed = clone(l.full)
	l.query = ""
	l.redraw()
}

// Filter shows the tasks whose title, category or date contains query,
// compared case-insensitively after trimming. An empty query shows everything.
func (l *List) Filter(query string) {
	q := normalize(query)
	l.query = q
	if q == "" {
		l.displayed = clone(l.full)
		l.redraw()
		return
	}
	out := make([]domain.Task, 0, len(l.full))
	for _, t := range l.full {
		if Matches(t, q) {
			out = append(out, t)
		}
	}
	l.displayed = out
	l.redraw()
}

// ReplaceAndFilter installs tasks and re-applies the current query, which is
// what the list screen does after a reload.
func (l *List) ReplaceAndFilter(tasks []domain.Task) {
	l.full = clone(tasks)
	l.Filter(l.query)
}

// Query returns the last applied query in normalized form.
func (l *List) Query() string { return l.query }

func (l *List) ItemAt(i int) (domain.Task, error) {
	if i < 0 || i >= len(l.displayed) {
		return domain.Task{}, fmt.Errorf("item %d of %d: %w", i, len(l.displayed), ErrIndexOutOfRange)
	}
	return l.displayed[i], nil
}

func (l *List) Count() int { return len(l.displayed) }

// Items returns a copy of the displayed tasks.
func (l *List) Items() []domain.Task { return clone(l.displayed) }

// Full returns a copy of the authoritative list.
func (l *List) Full() []domain.Task { return clone(l.full) }

// IndexOfID returns the displayed position of the task with id.
func (l *List) IndexOfID(id int) (int, bool) {
	for i, t := range l.displayed {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Matches reports whether t matches an already-normalized query.
func Matches(t domain.Task, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(string(t.Category)), q) ||
		strings.Contains(strings.ToLower(t.Date), q)
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func (l *List) redraw() {
	if l.redrawer != nil {
		l.redrawer.Redraw()
	}
}

func clone(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
