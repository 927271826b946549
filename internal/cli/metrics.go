package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
	"github.com/pritdesai016/theoquity-journal/internal/metrics"
)

// addMetricsCommands adds the derived-metrics command.
func addMetricsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newMetricsCmd(app))
}

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <trade-id> <leg-id>",
		Short: "Show derived metrics for a trade leg",
		Long: `Compute P&L, risk and holding-period metrics for one leg.

Metrics whose basis is unset (no initial stop, no exit yet) print as "` + Absent + `"
rather than zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			tradeID, err := strconv.Atoi(args[0])
			if err != nil {
				output.Warning("Bad trade ID %q", args[0])
				return nil
			}
			legID, err := strconv.Atoi(args[1])
			if err != nil {
				output.Warning("Bad leg ID %q", args[1])
				return nil
			}

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			leg, err := metrics.FindLeg(led, tradeID, legID)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrLegNotFound) {
					output.Warning("No leg (%d, %d) on record.", tradeID, legID)
					return nil
				}
				output.Error("Failed to fetch trade legs: %v", err)
				return err
			}

			m, err := metrics.Compute(leg, led)
			if err != nil {
				output.Error("Failed to compute metrics: %v", err)
				return err
			}
			logging.LogMetricsComputed(app.Logger, leg.TradeID, leg.LegID, m.NetPnL)

			if output.IsJSON() {
				return output.JSON(m)
			}

			output.Bold("%s  trade %d leg %d  (%s %s, %s)", leg.Symbol, leg.TradeID, leg.LegID,
				leg.Direction, leg.Instrument, leg.Status)
			output.Println()
			output.Printf("  Total Buy:         %s\n", FormatMoney(m.TotalBuy))
			output.Printf("  Total Sell:        %s\n", FormatMoney(m.TotalSell))
			output.Printf("  Gross P&L:         %s\n", output.FormatPnL(m.GrossPnL))
			output.Printf("  Net P&L:           %s\n", output.FormatPnL(m.NetPnL))
			output.Printf("  Active Stop:       %s\n", FormatOptional(m.ActiveStop, FormatPrice))
			output.Printf("  Original Risk/Sh:  %s\n", FormatOptional(m.OriginalRiskPerShare, FormatPrice))
			output.Printf("  Active Risk/Sh:    %s\n", FormatOptional(m.ActiveRiskPerShare, FormatPrice))
			output.Printf("  R-Multiple:        %s\n", FormatOptional(m.RMultiple, FormatR))
			output.Printf("  Locked R (TSL):    %s\n", FormatOptional(m.LockedR, FormatR))
			output.Printf("  Holding Days:      %s\n", FormatOptionalDays(m.HoldingDays))
			return nil
		},
	}
}
