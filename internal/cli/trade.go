package cli

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// timeLayout accepts the form input for entry/exit instants.
const timeLayout = "2006-01-02 15:04"

// addTradeCommands adds trade ledger commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade leg ledger",
		Long:  "Record and list trade legs. The ledger is append-only: corrections are new rows.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade leg",
		Long: `Record one trade leg in the journal.

When --trade-id is omitted the next suggested ID (max existing + 1) is used.
A --stop of 0 means no planned stop; risk metrics stay undefined for the leg.`,
		Example: `  theoquity trade add --symbol RELIANCE --qty 100 --price 2440 --stop 2400
  theoquity trade add --symbol NIFTY24SEPFUT --instrument FUTURES --multiplier 25 \
    --qty 1 --price 25120 --stop 24950 --target 25300 --target 25500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)

			led, err := app.Ledger(cmd)
			if err != nil {
				output.Error("Failed to open ledger: %v", err)
				return err
			}

			leg, err := legFromFlags(cmd, led)
			if err != nil {
				var verr *apperrors.ValidationError
				if apperrors.As(err, &verr) {
					output.Warning("Not recorded: %v", verr)
					return nil
				}
				return err
			}

			if err := led.AppendTrade(leg); err != nil {
				output.Error("Failed to record trade leg: %v", err)
				return err
			}
			logging.LogTradeAppended(app.Logger, leg.TradeID, leg.LegID, leg.Symbol, leg.BuyQty, leg.BuyPrice)

			if output.IsJSON() {
				return output.JSON(leg)
			}
			output.Success("Recorded trade %d leg %d: %s %s %s x %s @ %s",
				leg.TradeID, leg.LegID, leg.Symbol, leg.Direction,
				leg.Instrument, FormatQty(leg.BuyQty), FormatPrice(leg.BuyPrice))
			if leg.InitialStop == nil {
				output.Dim("No initial stop set; R metrics stay undefined for this leg.")
			}
			return nil
		},
	}

	cmd.Flags().Int("trade-id", 0, "trade ID (default: next suggested)")
	cmd.Flags().Int("leg-id", 1, "leg ID within the trade")
	cmd.Flags().String("exchange", "NSE", "exchange (NSE, BSE, NYSE, NASDAQ, CME, OTHER)")
	cmd.Flags().String("symbol", "", "instrument symbol")
	cmd.Flags().Float64("multiplier", 1, "lot size multiplier (1 for equities)")
	cmd.Flags().String("instrument", "EQUITY", "instrument type (EQUITY, FUTURES, OPTIONS, OTHER)")
	cmd.Flags().String("direction", "LONG", "direction (LONG, SHORT)")
	cmd.Flags().String("entry-time", "", "entry instant, \"2006-01-02 15:04\" (default: now)")
	cmd.Flags().String("strategy", "", "entry strategy label")
	cmd.Flags().Float64("qty", 0, "buy quantity")
	cmd.Flags().Float64("price", 0, "buy price")
	cmd.Flags().Float64("stop", 0, "initial stop price (0 = unset)")
	cmd.Flags().Float64Slice("target", nil, "target price, repeat up to five times (T1-T5)")
	cmd.Flags().Float64("sell-qty", 0, "sell quantity (0 = not yet exited)")
	cmd.Flags().Float64("exit-price", 0, "exit price")
	cmd.Flags().String("exit-time", "", "exit instant, \"2006-01-02 15:04\"")
	cmd.Flags().Float64("charges", 0, "total all-inclusive charges")
	cmd.Flags().String("catalyst", "", "catalyst label")
	cmd.Flags().Int("conviction", 50, "conviction score (0-100)")
	cmd.Flags().String("notes", "", "free-text notes")
	cmd.Flags().String("status", "OPEN", "status (PLANNED, OPEN, CLOSED, ABANDONED)")

	return cmd
}

// legFromFlags builds and validates a TradeLeg from the structured form.
func legFromFlags(cmd *cobra.Command, led ledger.Ledger) (models.TradeLeg, error) {
	tradeID, _ := cmd.Flags().GetInt("trade-id")
	if tradeID == 0 {
		suggested, err := led.NextSuggestedTradeID()
		if err != nil {
			return models.TradeLeg{}, err
		}
		tradeID = suggested
	}
	legID, _ := cmd.Flags().GetInt("leg-id")
	exchange, _ := cmd.Flags().GetString("exchange")
	symbol, _ := cmd.Flags().GetString("symbol")
	multiplier, _ := cmd.Flags().GetFloat64("multiplier")
	instrument, _ := cmd.Flags().GetString("instrument")
	direction, _ := cmd.Flags().GetString("direction")
	entryTimeStr, _ := cmd.Flags().GetString("entry-time")
	strategy, _ := cmd.Flags().GetString("strategy")
	qty, _ := cmd.Flags().GetFloat64("qty")
	price, _ := cmd.Flags().GetFloat64("price")
	stop, _ := cmd.Flags().GetFloat64("stop")
	targets, _ := cmd.Flags().GetFloat64Slice("target")
	sellQty, _ := cmd.Flags().GetFloat64("sell-qty")
	exitPrice, _ := cmd.Flags().GetFloat64("exit-price")
	exitTimeStr, _ := cmd.Flags().GetString("exit-time")
	charges, _ := cmd.Flags().GetFloat64("charges")
	catalyst, _ := cmd.Flags().GetString("catalyst")
	conviction, _ := cmd.Flags().GetInt("conviction")
	notes, _ := cmd.Flags().GetString("notes")
	status, _ := cmd.Flags().GetString("status")

	entryTime := time.Now()
	if entryTimeStr != "" {
		t, err := time.ParseInLocation(timeLayout, entryTimeStr, time.Local)
		if err != nil {
			return models.TradeLeg{}, apperrors.NewValidationError("entry_time", entryTimeStr, "expected format 2006-01-02 15:04")
		}
		entryTime = t
	}

	var exitTime *time.Time
	if exitTimeStr != "" {
		t, err := time.ParseInLocation(timeLayout, exitTimeStr, time.Local)
		if err != nil {
			return models.TradeLeg{}, apperrors.NewValidationError("exit_time", exitTimeStr, "expected format 2006-01-02 15:04")
		}
		exitTime = &t
	}

	leg := models.TradeLeg{
		TradeID:     tradeID,
		LegID:       legID,
		Exchange:    models.Exchange(exchange),
		Symbol:      symbol,
		Multiplier:  multiplier,
		Instrument:  models.Instrument(instrument),
		Direction:   models.Direction(direction),
		EntryTime:   entryTime,
		Strategy:    strategy,
		BuyQty:      qty,
		BuyPrice:    price,
		InitialStop: models.PricePtr(stop),
		Targets:     targets,
		SellQty:     sellQty,
		ExitPrice:   exitPrice,
		ExitTime:    exitTime,
		Charges:     charges,
		Catalyst:    catalyst,
		Conviction:  conviction,
		Notes:       notes,
		Status:      models.TradeStatus(status),
	}
	if err := leg.Validate(); err != nil {
		return models.TradeLeg{}, err
	}
	return leg, nil
}

func newTradeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded trade legs",
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

			if output.IsJSON() {
				return output.JSON(legs)
			}

			if len(legs) == 0 {
				output.Info("No trade legs recorded yet.")
				return nil
			}

			table := NewTable(output, "Trade", "Leg", "Symbol", "Dir", "Qty", "Entry", "Stop", "Exit", "Status")
			for _, leg := range legs {
				table.AddRow(
					FormatQty(float64(leg.TradeID)),
					FormatQty(float64(leg.LegID)),
					TruncateString(leg.Symbol, 16),
					string(leg.Direction),
					FormatQty(leg.BuyQty),
					FormatPrice(leg.BuyPrice),
					FormatOptional(leg.InitialStop, FormatPrice),
					exitCell(leg),
					string(leg.Status),
				)
			}
			table.Render()
			output.Println()
			output.Printf("%d legs\n", len(legs))
			return nil
		},
	}
}

func exitCell(leg models.TradeLeg) string {
	if !leg.Exited() {
		return Absent
	}
	return FormatPrice(leg.ExitPrice)
}
