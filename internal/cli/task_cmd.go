package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripplan/internal/cli/formatter"
	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/service"
	"github.com/alexanderramin/tripplan/internal/tasklist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taskFlags binds the per-field flags shared by add and edit.
type taskFlags struct {
	form taskForm
}

func (f *taskFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.form.Title, "title", "t", "", "Task title")
	fs.StringVarP(&f.form.Category, "category", "c", "", "Flight, Hotel, Packing or Other")
	fs.StringVarP(&f.form.Date, "date", "d", "", "Date as dd/mm/yyyy")
	fs.StringVarP(&f.form.Budget, "budget", "b", "", "Budget amount")
	fs.BoolVar(&f.form.Important, "important", false, "Mark as important")
	fs.BoolVar(&f.form.Done, "done", false, "Mark as done")
	fs.StringVarP(&f.form.Notes, "notes", "n", "", "Free-form notes")
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

var taskFlagNames = []string{"title", "category", "date", "budget", "important", "done", "notes"}

func newAddCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trip task",
		Long:  "Add a trip task. Without --title an interactive form is shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form
			if !cmd.Flags().Changed("title") {
				if !app.interactive() {
					return &ValidationError{Field: "title", Message: "is required"}
				}
				if err := formTask("New trip task", &form).Run(); err != nil {
					return err
				}
			}

			in, err := parseTaskForm(form)
			if err != nil {
				return err
			}
			task, err := app.Tasks.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added #%d %s\n",
				formatter.StyleGreen.Render("✔"), task.ID, formatter.Bold(task.Title))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a trip task",
		Long:  "Change the given fields of a task. Without field flags an interactive form is shown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var task domain.Task
			if anyChanged(cmd, taskFlagNames...) {
				patch, err := patchFromFlags(cmd, flags.form)
				if err != nil {
					return err
				}
				task, err = app.Tasks.Patch(ctx, id, patch)
				if err != nil {
					return err
				}
			} else {
				if !app.interactive() {
					return errors.New("nothing to change; pass field flags or run in a terminal")
				}
				current, err := app.Tasks.Get(ctx, id)
				if err != nil {
					return err
				}
				form := formFromTask(current)
				if err := formTask(fmt.Sprintf("Edit #%d", id), &form).Run(); err != nil {
					return err
				}
				in, err := parseTaskEdit(form, current)
				if err != nil {
					return err
				}
				task, err = app.Tasks.Update(ctx, id, in)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated #%d %s\n",
				formatter.StyleGreen.Render("✔"), task.ID, formatter.Bold(task.Title))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// patchFromFlags validates only the flags that were given.
func patchFromFlags(cmd *cobra.Command, f taskForm) (service.TaskPatch, error) {
	var p service.TaskPatch
	if cmd.Flags().Changed("title") {
		title, err := parseTitle(f.Title)
		if err != nil {
			return p, err
		}
		p.Title = &title
	}
	if cmd.Flags().Changed("category") {
		c, err := parseCategory(f.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if cmd.Flags().Changed("date") {
		date, err := parseDate(f.Date)
		if err != nil {
			return p, err
		}
		p.Date = &date
	}
	if cmd.Flags().Changed("budget") {
		budget, err := parseBudget(f.Budget)
		if err != nil {
			return p, err
		}
		p.Budget = &budget
	}
	if cmd.Flags().Changed("important") {
		p.Important = &f.Important
	}
	if cmd.Flags().Changed("done") {
		p.Done = &f.Done
	}
	if cmd.Flags().Changed("notes") {
		p.Notes = &f.Notes
	}
	return p, nil
}

func newRemoveCmd(app *App) *cobra.Command {
	var (
		yes   bool
		row   int
		query string
	)

	cmd := &cobra.Command{
		Use:     "rm [ID]",
		Aliases: []string{"delete"},
		Short:   "Delete a trip task",
		Long: `Delete a trip task by id, or by its row number in a listing with --row.
--row counts from 1 over the tasks matching --query, in the order "list --query" prints them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				task domain.Task
				view *tasklist.List
			)
			switch {
			case len(args) == 1 && row > 0:
				return errors.New("give either an ID or --row, not both")
			case len(args) == 1:
				id, err := parseTaskID(args[0])
				if err != nil {
					return err
				}
				if task, err = app.Tasks.Get(ctx, id); err != nil {
					return err
				}
			case row > 0:
				all, err := app.Tasks.List(ctx)
				if err != nil {
					return err
				}
				view = tasklist.New(nil)
				view.Replace(all)
				view.Filter(query)
				if task, err = view.ItemAt(row - 1); err != nil {
					return fmt.Errorf("row %d: %w", row, err)
				}
			default:
				return errors.New("missing task ID or --row")
			}

			if !yes {
				ok, err := app.confirm(fmt.Sprintf("Delete #%d %q?", task.ID, task.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if view != nil {
				removed, err := app.Tasks.DeleteAt(ctx, view, row-1)
				if err != nil {
					return err
				}
				task = removed
			} else if err := app.Tasks.Delete(ctx, task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted: %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(task.Title))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	cmd.Flags().IntVar(&row, "row", 0, "Row number (from 1) in the filtered list")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter applied before counting --row")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.ToggleDone(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "not done"
			if task.Done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s marked %s\n",
				formatter.DoneBox(task.Done), task.ID, formatter.Bold(task.Title), state)
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(task))
			return nil
		},
	}
}
