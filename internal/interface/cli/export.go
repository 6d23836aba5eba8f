package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export <students|instructors|courses|enrollments>",
		Short:     "Export records of one kind as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"students", "instructors", "courses", "enrollments"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.Export.Handle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("export: failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			w := csv.NewWriter(out)
			if err := w.WriteAll(table); err != nil {
				return fmt.Errorf("export: failed to write csv: %w", err)
			}

			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(table)-1, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
