package cli

import (
	"time"

	"github.com/alexanderramin/tripplan/internal/cli/formatter"
	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func tripplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formTask builds the add/edit form over f. An unknown stored category is
// offered as an extra option so editing other fields keeps it.
func formTask(title string, f *taskForm) *huh.Form {
	if f.Date == "" {
		f.Date = domain.FormatTime(time.Now())
	}
	if f.Category == "" {
		f.Category = string(domain.CategoryOther)
	}

	options := make([]huh.Option[string], 0, len(domain.Categories)+1)
	for _, c := range domain.Categories {
		options = append(options, huh.NewOption(string(c), string(c)))
	}
	if !domain.Category(f.Category).IsKnown() {
		options = append(options, huh.NewOption(f.Category+" (keep)", f.Category))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Title").
				Placeholder("Flight to Paris").
				Value(&f.Title).
				Validate(validateTitleInput),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&f.Category),
			huh.NewInput().
				Title("Date").
				Placeholder("dd/mm/yyyy").
				Value(&f.Date).
				Validate(validateDateInput),
			huh.NewInput().
				Title("Budget").
				Placeholder("0").
				Value(&f.Budget).
				Validate(validateBudgetInput),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Important?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.Important),
			huh.NewConfirm().
				Title("Done?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.Done),
			huh.NewText().
				Title("Notes").
				Value(&f.Notes),
		),
	).WithTheme(tripplanHuhTheme()).WithShowHelp(false)
}

// formConfirm creates a huh form for a yes/no confirmation.
func formConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(tripplanHuhTheme()).WithShowHelp(false)
}
