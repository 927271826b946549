// Package integration provides end-to-end tests for the journal workflow:
// append a leg, trail its stop, derive metrics, export the tables.
package integration

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pritdesai016/theoquity-journal/internal/export"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/metrics"
	"github.com/pritdesai016/theoquity-journal/internal/models"
	"github.com/pritdesai016/theoquity-journal/internal/session"
)

// TestJournalWorkflow walks the full closed-trade path: a leg bought at 50
// with a 45 stop, exited at 60 with 10 in charges.
func TestJournalWorkflow(t *testing.T) {
	sessions := session.NewManager(func() (ledger.Ledger, error) {
		return ledger.NewMemory(), nil
	})
	defer sessions.Close()

	led, err := sessions.Get("default")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	suggested, err := led.NextSuggestedTradeID()
	if err != nil {
		t.Fatalf("NextSuggestedTradeID: %v", err)
	}
	if suggested != 1 {
		t.Fatalf("fresh session must suggest trade ID 1, got %d", suggested)
	}

	stop := 45.0
	entry := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	exit := entry.AddDate(0, 0, 2)
	leg := models.TradeLeg{
		TradeID: suggested, LegID: 1,
		Exchange: models.NSE, Symbol: "SBIN",
		Multiplier: 1, Instrument: models.InstrumentEquity, Direction: models.DirectionLong,
		EntryTime: entry, Strategy: "pullback",
		BuyQty: 100, BuyPrice: 50, InitialStop: &stop,
		SellQty: 100, ExitPrice: 60, ExitTime: &exit,
		Charges: 10, Conviction: 65, Status: models.StatusClosed,
	}
	if err := leg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := led.AppendTrade(leg); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}

	m, err := metrics.Compute(leg, led)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.TotalBuy != 5000 || m.TotalSell != 6000 {
		t.Errorf("totals: buy=%v sell=%v", m.TotalBuy, m.TotalSell)
	}
	if m.GrossPnL != 1000 || m.NetPnL != 990 {
		t.Errorf("pnl: gross=%v net=%v", m.GrossPnL, m.NetPnL)
	}
	if m.OriginalRiskPerShare == nil || *m.OriginalRiskPerShare != 5 {
		t.Errorf("risk per share: %v", m.OriginalRiskPerShare)
	}
	if m.RMultiple == nil || *m.RMultiple != 2.0 {
		t.Errorf("R-multiple: %v", m.RMultiple)
	}
	if m.HoldingDays == nil || *m.HoldingDays != 2 {
		t.Errorf("holding days: %v", m.HoldingDays)
	}

	// Trail the stop above entry; locked R appears.
	if err := led.AppendStop(models.StopEvent{
		TradeID: leg.TradeID, LegID: leg.LegID,
		Type: models.StopTrailing, Price: 55,
		Timestamp: entry.Add(26 * time.Hour),
	}); err != nil {
		t.Fatalf("AppendStop: %v", err)
	}

	m, err = metrics.Compute(leg, led)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.ActiveStop == nil || *m.ActiveStop != 55 {
		t.Errorf("active stop after trail: %v", m.ActiveStop)
	}
	if m.ActiveRiskPerShare == nil || *m.ActiveRiskPerShare != -5 {
		t.Errorf("active risk per share: %v", m.ActiveRiskPerShare)
	}
	if m.LockedR == nil || *m.LockedR != 1.0 {
		t.Errorf("locked R: %v", m.LockedR)
	}

	// Both tables export with headers and one data row each.
	var trades, stops bytes.Buffer
	if err := export.WriteTrades(&trades, led); err != nil {
		t.Fatalf("WriteTrades: %v", err)
	}
	if err := export.WriteStops(&stops, led); err != nil {
		t.Fatalf("WriteStops: %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(trades.String()), "\n")); n != 2 {
		t.Errorf("trades export: expected 2 lines, got %d", n)
	}
	if n := len(strings.Split(strings.TrimSpace(stops.String()), "\n")); n != 2 {
		t.Errorf("stops export: expected 2 lines, got %d", n)
	}
}

// TestOpenLegAccruesOnlyCosts covers the not-yet-exited path: no realized
// gain, no R-multiple, no holding period, net P&L is pure cost accrual.
func TestOpenLegAccruesOnlyCosts(t *testing.T) {
	led := ledger.NewMemory()

	stop := 95.0
	leg := models.TradeLeg{
		TradeID: 1, LegID: 1,
		Exchange: models.NYSE, Symbol: "AAPL",
		Multiplier: 1, Instrument: models.InstrumentEquity, Direction: models.DirectionLong,
		EntryTime: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		BuyQty:    0, BuyPrice: 0, InitialStop: &stop,
		Charges: 12.5, Conviction: 50, Status: models.StatusOpen,
	}
	if err := led.AppendTrade(leg); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}

	m, err := metrics.Compute(leg, led)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.RMultiple != nil {
		t.Errorf("R-multiple must be absent: %v", *m.RMultiple)
	}
	if m.HoldingDays != nil {
		t.Errorf("holding days must be absent: %v", *m.HoldingDays)
	}
	if m.NetPnL != -12.5 {
		t.Errorf("net P&L must be the negated charges, got %v", m.NetPnL)
	}
}

// TestFuturesMultiplier verifies the lot-size multiplier flows through the
// notional totals.
func TestFuturesMultiplier(t *testing.T) {
	led := ledger.NewMemory()

	stop := 24950.0
	entry := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	exit := entry.AddDate(0, 0, 1)
	leg := models.TradeLeg{
		TradeID: 1, LegID: 1,
		Exchange: models.NSE, Symbol: "NIFTY24SEPFUT",
		Multiplier: 25, Instrument: models.InstrumentFutures, Direction: models.DirectionLong,
		EntryTime: entry,
		BuyQty:    1, BuyPrice: 25000, InitialStop: &stop,
		SellQty: 1, ExitPrice: 25100, ExitTime: &exit,
		Charges: 40, Conviction: 55, Status: models.StatusClosed,
	}
	if err := led.AppendTrade(leg); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}

	m, err := metrics.Compute(leg, led)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if m.TotalBuy != 625000 {
		t.Errorf("TotalBuy with multiplier: expected 625000, got %v", m.TotalBuy)
	}
	if m.TotalSell != 627500 {
		t.Errorf("TotalSell with multiplier: expected 627500, got %v", m.TotalSell)
	}
	if m.GrossPnL != 2500 {
		t.Errorf("GrossPnL: expected 2500, got %v", m.GrossPnL)
	}
	// risk basis stays per share, unaffected by the multiplier
	if m.RMultiple == nil || *m.RMultiple != 2.0 {
		t.Errorf("RMultiple: expected 2.0, got %v", m.RMultiple)
	}
}
