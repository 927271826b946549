package cli

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// addStopCommands adds stop ledger commands.
func addStopCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop-loss event ledger",
		Long:  "Record stop-loss events against an existing trade leg. Trailing a stop appends a new row; nothing is updated in place.",
	}

	cmd.AddCommand(newStopAddCmd(app))
	cmd.AddCommand(newStopListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newStopAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a stop-loss event",
		Example: `  theoquity stop add --trade-id 3 --leg-id 1 --price 2450 --type TRAILING
  theoquity stop add --trade-id 3 --leg-id 1 --price 2400 --type INITIAL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			legs, err := led.Trades()
			if err != nil {
				output.Error("Failed to fetch trade legs: %v", err)
				return err
			}
			// Blocked, not fatal: the session continues.
			if len(legs) == 0 {
				output.Warning("Not recorded: %v; add a trade first.", apperrors.ErrNoTradeLegs)
				return nil
			}

			tradeID, _ := cmd.Flags().GetInt("trade-id")
			legID, _ := cmd.Flags().GetInt("leg-id")
			price, _ := cmd.Flags().GetFloat64("price")
			stopType, _ := cmd.Flags().GetString("type")
			tsStr, _ := cmd.Flags().GetString("time")

			ev := models.StopEvent{
				TradeID: tradeID,
				LegID:   legID,
				Type:    models.StopType(stopType),
				Price:   price,
			}
			if tsStr != "" {
				t, err := time.ParseInLocation(timeLayout, tsStr, time.Local)
				if err != nil {
					output.Warning("Not recorded: bad --time %q, expected format 2006-01-02 15:04", tsStr)
					return nil
				}
				ev.Timestamp = t
			}
			if err := ev.Validate(); err != nil {
				var verr *apperrors.ValidationError
				if apperrors.As(err, &verr) {
					output.Warning("Not recorded: %v", verr)
					return nil
				}
				return err
			}

			// The stop table holds only a weak reference; an unknown key is
			// legal in the store but almost always a typo at the form.
			known, err := led.HasLeg(tradeID, legID)
			if err != nil {
				return err
			}
			if !known {
				output.Warning("No leg (%d, %d) on record; the stop is kept but will not affect any metrics.", tradeID, legID)
			}

			if err := led.AppendStop(ev); err != nil {
				output.Error("Failed to record stop event: %v", err)
				return err
			}
			logging.LogStopAppended(app.Logger, ev.TradeID, ev.LegID, string(ev.Type), ev.Price)

			if output.IsJSON() {
				return output.JSON(ev)
			}
			output.Success("Recorded %s stop %s for trade %d leg %d",
				ev.Type, FormatPrice(ev.Price), ev.TradeID, ev.LegID)
			return nil
		},
	}

	cmd.Flags().Int("trade-id", 0, "trade ID of the referenced leg")
	cmd.Flags().Int("leg-id", 1, "leg ID of the referenced leg")
	cmd.Flags().Float64("price", 0, "stop price")
	cmd.Flags().String("type", "TRAILING", "stop type (INITIAL, TRAILING)")
	cmd.Flags().String("time", "", "event instant, \"2006-01-02 15:04\" (default: now)")

	return cmd
}

func newStopListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded stop events",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			stops, err := led.Stops()
			if err != nil {
				output.Error("Failed to fetch stop events: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(stops)
			}

			if len(stops) == 0 {
				output.Info("No stop events recorded yet.")
				return nil
			}

			table := NewTable(output, "Trade", "Leg", "Type", "Price", "Time")
			for _, ev := range stops {
				table.AddRow(
					FormatQty(float64(ev.TradeID)),
					FormatQty(float64(ev.LegID)),
					string(ev.Type),
					FormatPrice(ev.Price),
					output.FormatDateTime(ev.Timestamp),
				)
			}
			table.Render()
			return nil
		},
	}
}
