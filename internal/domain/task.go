package domain

// Task is a single trip-planning record.
type Task struct {
	ID        int
	Title     string
	Category  Category
	Date      string // dd/MM/yyyy
	Budget    float64
	Important bool
	Done      bool
	Notes     string
}

// NewTask builds a Task from every field. Callers validate input first.
func NewTask(id int, title string, category Category, date string, budget float64, important, done bool, notes string) Task {
	return Task{
		ID:        id,
		Title:     title,
		Category:  category,
		Date:      date,
		Budget:    budget,
		Important: important,
		Done:      done,
		Notes:     notes,
	}
}

// ToggleDone flips the completion flag.
func (t *Task) ToggleDone() {
	t.Done = !t.Done
}
