package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/export"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
)

// addExportCommands adds the CSV export commands.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal tables as CSV",
		Long:  "Write the trades or stops table as UTF-8 CSV with a header row. There is no import path.",
	}

	cmd.AddCommand(newExportTableCmd(app, "trades", export.WriteTrades))
	cmd.AddCommand(newExportTableCmd(app, "stops", export.WriteStops))

	rootCmd.AddCommand(cmd)
}

func newExportTableCmd(app *App, table string, write func(w io.Writer, led ledger.Ledger) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   table,
		Short: "Export the " + table + " table",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				outPath = table + ".csv"
			}

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				output.Error("Failed to create %s: %v", outPath, err)
				return apperrors.Wrap(apperrors.ErrExportFailed, err.Error())
			}
			defer f.Close()

			if err := write(f, led); err != nil {
				output.Error("Failed to export %s: %v", table, err)
				return apperrors.Wrap(apperrors.ErrExportFailed, err.Error())
			}

			rows, err := rowCount(table, led)
			if err != nil {
				return err
			}
			logging.LogExport(app.Logger, table, outPath, rows)
			output.Success("Exported %d %s rows to %s", rows, table, outPath)
			return nil
		},
	}

	cmd.Flags().String("out", "", "output file path (default: <table>.csv)")
	return cmd
}

func rowCount(table string, led ledger.Ledger) (int, error) {
	if table == "trades" {
		legs, err := led.Trades()
		return len(legs), err
	}
	stops, err := led.Stops()
	return len(stops), err
}
