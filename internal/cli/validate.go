package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/service"
)

// ValidationError reports one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// taskForm is the raw text a user entered for a task.
type taskForm struct {
	Title     string
	Category  string
	Date      string
	Budget    string
	Important bool
	Done      bool
	Notes     string
}

func formFromTask(t domain.Task) taskForm {
	budget := ""
	if t.Budget != 0 {
		budget = strconv.FormatFloat(t.Budget, 'f', -1, 64)
	}
	return taskForm{
		Title:     t.Title,
		Category:  string(t.Category),
		Date:      t.Date,
		Budget:    budget,
		Important: t.Important,
		Done:      t.Done,
		Notes:     t.Notes,
	}
}

// parseTaskForm checks every field and builds the service input. The title
// and notes are trimmed.
func parseTaskForm(f taskForm) (service.TaskInput, error) {
	title, err := parseTitle(f.Title)
	if err != nil {
		return service.TaskInput{}, err
	}
	category, err := parseCategory(f.Category)
	if err != nil {
		return service.TaskInput{}, err
	}
	date, err := parseDate(f.Date)
	if err != nil {
		return service.TaskInput{}, err
	}
	budget, err := parseBudget(f.Budget)
	if err != nil {
		return service.TaskInput{}, err
	}
	return service.TaskInput{
		Title:     title,
		Category:  category,
		Date:      date,
		Budget:    budget,
		Important: f.Important,
		Done:      f.Done,
		Notes:     strings.TrimSpace(f.Notes),
	}, nil
}

// parseTaskEdit is parseTaskForm for the edit form. The category select
// offers an unknown stored category back unchanged, and that value is kept
// verbatim instead of being rejected.
func parseTaskEdit(f taskForm, current domain.Task) (service.TaskInput, error) {
	keep := !current.Category.IsKnown() && f.Category == string(current.Category)
	if keep {
		f.Category = ""
	}
	in, err := parseTaskForm(f)
	if err != nil {
		return service.TaskInput{}, err
	}
	if keep {
		in.Category = current.Category
	}
	return in, nil
}

func parseTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "title", Message: "is required"}
	}
	return s, nil
}

// parseCategory maps empty input to Other, like an unselected radio group.
func parseCategory(s string) (domain.Category, error) {
	if strings.TrimSpace(s) == "" {
		return domain.CategoryOther, nil
	}
	c, ok := domain.ParseCategory(s)
	if !ok {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("%q is not one of Flight, Hotel, Packing, Other", s)}
	}
	return c, nil
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "date", Message: "is required (dd/mm/yyyy)"}
	}
	day, month, year, err := domain.ParseTaskDate(s)
	if err != nil {
		return "", &ValidationError{Field: "date", Message: err.Error()}
	}
	return domain.FormatTaskDate(day, month, year), nil
}

// parseBudget treats empty input as zero.
func parseBudget(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "budget", Message: fmt.Sprintf("%q is not a number", s)}
	}
	if v < 0 {
		return 0, &ValidationError{Field: "budget", Message: "must not be negative"}
	}
	return v, nil
}

// huh validators share the parsers so forms and flags agree.

func validateTitleInput(s string) error {
	_, err := parseTitle(s)
	return formError(err)
}

func validateDateInput(s string) error {
	_, err := parseDate(s)
	return formError(err)
}

func validateBudgetInput(s string) error {
	_, err := parseBudget(s)
	return formError(err)
}

func formError(err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return fmt.Errorf("%s %s", ve.Field, ve.Message)
	}
	return err
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a task id", s)}
	}
	return id, nil
}
