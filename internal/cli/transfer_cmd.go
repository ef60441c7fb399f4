package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/tripplan/internal/cli/formatter"
	"github.com/alexanderramin/tripplan/internal/store"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context())
			if err != nil {
				return err
			}
			data, err := store.Encode(tasks)
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data, "", "  "); err != nil {
				return fmt.Errorf("formatting export: %w", err)
			}
			pretty.WriteByte('\n')

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(pretty.Bytes())
				return err
			}
			if err := os.WriteFile(out, pretty.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d task(s) to %s\n",
				formatter.StyleGreen.Render("✔"), len(tasks), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace, yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add tasks from a JSON array file",
		Long: `Add tasks from a JSON file in the export format. Tasks whose id is
missing or already used get a new id. --replace discards the current tasks first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			tasks, err := store.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if replace && !yes {
				ok, err := app.confirm("Replace all current tasks?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			res, err := app.Tasks.Import(cmd.Context(), tasks, replace)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("%s Imported %d task(s)", formatter.StyleGreen.Render("✔"), res.Added)
			if res.Renumbered > 0 {
				msg += formatter.Dim(fmt.Sprintf(" (%d given new ids)", res.Renumbered))
			}
			if res.Replaced {
				msg += formatter.Dim(", previous tasks replaced")
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace all current tasks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}
