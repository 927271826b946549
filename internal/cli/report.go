package cli

import (
	"github.com/spf13/cobra"

	"github.com/pritdesai016/theoquity-journal/internal/metrics"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// addReportCommands adds the aggregate performance report.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
}

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Aggregate performance over closed legs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			summary, err := metrics.Summarize(led)
			if err != nil {
				output.Error("Failed to compute summary: %v", err)
				return err
			}
			byStatus, err := metrics.CountByStatus(led)
			if err != nil {
				output.Error("Failed to count legs: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			if summary.TotalLegs == 0 {
				output.Info("No trade legs recorded yet.")
				return nil
			}

			output.Bold("Journal Summary")
			output.Printf("  Total Legs:       %d\n", summary.TotalLegs)
			for _, status := range []models.TradeStatus{
				models.StatusPlanned, models.StatusOpen, models.StatusClosed, models.StatusAbandoned,
			} {
				if n := byStatus[status]; n > 0 {
					output.Printf("  %-17s %d\n", string(status)+":", n)
				}
			}
			output.Println()

			if summary.ClosedLegs == 0 {
				output.Info("Nothing closed yet; realized statistics need at least one exit.")
				return nil
			}

			output.Bold("Realized Performance")
			output.Printf("  Closed Legs:      %d\n", summary.ClosedLegs)
			output.Printf("  Wins/Losses:      %d/%d (%s win rate)\n",
				summary.Wins, summary.Losses, FormatPercent(summary.WinRate))
			output.Printf("  Gross Profit:     %s\n", output.Green(FormatMoney(summary.GrossProfit)))
			output.Printf("  Gross Loss:       %s\n", output.Red(FormatMoney(summary.GrossLoss)))
			output.Printf("  Total Charges:    %s\n", FormatMoney(summary.TotalCharges))
			output.Printf("  Net P&L:          %s\n", output.FormatPnL(summary.NetPnL))
			output.Printf("  Profit Factor:    %s\n", FormatOptional(summary.ProfitFactor, FormatMoney))
			output.Printf("  Expectancy:       %s\n", FormatOptional(summary.Expectancy, FormatMoney))
			output.Printf("  Avg R-Multiple:   %s\n", FormatOptional(summary.AvgRMultiple, FormatR))
			return nil
		},
	}
}
