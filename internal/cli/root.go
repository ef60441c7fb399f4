package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Tasks service.TaskService

	// Connect opens storage when Tasks is nil. dbPath is the --db flag value,
	// empty when the flag was not given.
	Connect func(dbPath string) (service.TaskService, error)

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Nil uses a huh confirmation form.
	Confirm func(title string) (bool, error)

	// RunProgram runs a bubbletea model. Nil uses a full-screen tea.Program.
	RunProgram func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	if !a.interactive() {
		return false, errors.New("refusing to ask for confirmation without a terminal; pass --yes")
	}
	var ok bool
	if err := formConfirm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "tripplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "tripplan",
		Short:         "Plan trip tasks: flights, hotels, packing and the rest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Tasks != nil || app.Connect == nil {
				return nil
			}
			tasks, err := app.Connect(dbPath)
			if err != nil {
				return fmt.Errorf("opening task store: %w", err)
			}
			app.Tasks = tasks
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runBrowse(cmd, app)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides config and TRIPPLAN_DB)")

	root.AddCommand(
		newAddCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newDoneCmd(app),
		newShowCmd(app),
		newListCmd(app),
		newSummaryCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newBrowseCmd(app),
	)

	return root
}
