// Package export serializes the journal tables to flat CSV for download.
// There is no import path: the journal is append-only through the CLI.
package export

import (
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// tradeRow is the flat CSV projection of a TradeLeg. Optional fields render
// empty, not "0", so a reader can tell unset from zero.
type tradeRow struct {
	TradeID     int    `csv:"trade_id"`
	LegID       int    `csv:"leg_id"`
	Exchange    string `csv:"exchange"`
	Symbol      string `csv:"symbol"`
	Multiplier  string `csv:"multiplier"`
	Instrument  string `csv:"instrument"`
	Direction   string `csv:"direction"`
	EntryTime   string `csv:"entry_time"`
	Strategy    string `csv:"strategy"`
	BuyQty      string `csv:"buy_qty"`
	BuyPrice    string `csv:"buy_price"`
	InitialStop string `csv:"initial_stop"`
	Target1     string `csv:"target_1"`
	Target2     string `csv:"target_2"`
	Target3     string `csv:"target_3"`
	Target4     string `csv:"target_4"`
	Target5     string `csv:"target_5"`
	SellQty     string `csv:"sell_qty"`
	ExitPrice   string `csv:"exit_price"`
	ExitTime    string `csv:"exit_time"`
	Charges     string `csv:"charges"`
	Catalyst    string `csv:"catalyst"`
	Conviction  int    `csv:"conviction"`
	Notes       string `csv:"notes"`
	Status      string `csv:"status"`
}

// stopRow is the flat CSV projection of a StopEvent.
type stopRow struct {
	TradeID   int    `csv:"trade_id"`
	LegID     int    `csv:"leg_id"`
	StopType  string `csv:"stop_type"`
	StopPrice string `csv:"stop_price"`
	Timestamp string `csv:"timestamp"`
}

// WriteTrades writes the trades table as CSV with a header row.
func WriteTrades(w io.Writer, led ledger.Ledger) error {
	legs, err := led.Trades()
	if err != nil {
		return err
	}

	rows := make([]tradeRow, 0, len(legs))
	for _, leg := range legs {
		rows = append(rows, newTradeRow(leg))
	}
	return gocsv.Marshal(&rows, w)
}

// WriteStops writes the stops table as CSV with a header row.
func WriteStops(w io.Writer, led ledger.Ledger) error {
	stops, err := led.Stops()
	if err != nil {
		return err
	}

	rows := make([]stopRow, 0, len(stops))
	for _, ev := range stops {
		rows = append(rows, stopRow{
			TradeID:   ev.TradeID,
			LegID:     ev.LegID,
			StopType:  string(ev.Type),
			StopPrice: num(ev.Price),
			Timestamp: ev.Timestamp.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(&rows, w)
}

func newTradeRow(leg models.TradeLeg) tradeRow {
	row := tradeRow{
		TradeID:    leg.TradeID,
		LegID:      leg.LegID,
		Exchange:   string(leg.Exchange),
		Symbol:     leg.Symbol,
		Multiplier: num(leg.Multiplier),
		Instrument: string(leg.Instrument),
		Direction:  string(leg.Direction),
		Strategy:   leg.Strategy,
		BuyQty:     num(leg.BuyQty),
		BuyPrice:   num(leg.BuyPrice),
		SellQty:    num(leg.SellQty),
		ExitPrice:  num(leg.ExitPrice),
		Charges:    num(leg.Charges),
		Catalyst:   leg.Catalyst,
		Conviction: leg.Conviction,
		Notes:      leg.Notes,
		Status:     string(leg.Status),
	}
	if !leg.EntryTime.IsZero() {
		row.EntryTime = leg.EntryTime.Format(time.RFC3339)
	}
	if leg.InitialStop != nil {
		row.InitialStop = num(*leg.InitialStop)
	}
	targets := [5]*string{&row.Target1, &row.Target2, &row.Target3, &row.Target4, &row.Target5}
	for i, t := range leg.Targets {
		if i >= len(targets) {
			break
		}
		*targets[i] = num(t)
	}
	if leg.ExitTime != nil {
		row.ExitTime = leg.ExitTime.Format(time.RFC3339)
	}
	return row
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
