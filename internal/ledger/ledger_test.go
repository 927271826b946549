package ledger

import (
	"testing"
	"time"

	"github.com/pritdesai016/theoquity-journal/internal/models"
)

func sampleLeg(tradeID, legID int) models.TradeLeg {
	return models.TradeLeg{
		TradeID:    tradeID,
		LegID:      legID,
		Exchange:   models.NSE,
		Symbol:     "RELIANCE",
		Multiplier: 1,
		Instrument: models.InstrumentEquity,
		Direction:  models.DirectionLong,
		EntryTime:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		BuyQty:     100,
		BuyPrice:   2440,
		Conviction: 60,
		Status:     models.StatusOpen,
	}
}

func TestMemoryNextSuggestedTradeID(t *testing.T) {
	led := NewMemory()

	id, err := led.NextSuggestedTradeID()
	if err != nil {
		t.Fatalf("NextSuggestedTradeID: %v", err)
	}
	if id != 1 {
		t.Errorf("empty ledger: expected 1, got %d", id)
	}

	for _, tradeID := range []int{3, 1, 7, 2} {
		if err := led.AppendTrade(sampleLeg(tradeID, 1)); err != nil {
			t.Fatalf("AppendTrade: %v", err)
		}
	}

	id, err = led.NextSuggestedTradeID()
	if err != nil {
		t.Fatalf("NextSuggestedTradeID: %v", err)
	}
	if id != 8 {
		t.Errorf("expected max+1 = 8, got %d", id)
	}
}

func TestMemoryAppendTradeNoDedup(t *testing.T) {
	led := NewMemory()
	leg := sampleLeg(1, 1)

	if err := led.AppendTrade(leg); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}
	if err := led.AppendTrade(leg); err != nil {
		t.Fatalf("AppendTrade duplicate: %v", err)
	}

	legs, err := led.Trades()
	if err != nil {
		t.Fatalf("Trades: %v", err)
	}
	if len(legs) != 2 {
		t.Errorf("expected 2 rows after two appends of the same leg, got %d", len(legs))
	}
}

func TestMemoryActiveStopDefault(t *testing.T) {
	led := NewMemory()

	def := 45.0
	got, err := led.ActiveStop(1, 1, &def)
	if err != nil {
		t.Fatalf("ActiveStop: %v", err)
	}
	if got != &def {
		t.Errorf("expected the supplied default pointer unchanged, got %v", got)
	}

	got, err = led.ActiveStop(1, 1, nil)
	if err != nil {
		t.Fatalf("ActiveStop: %v", err)
	}
	if got != nil {
		t.Errorf("nil default must stay nil, got %v", *got)
	}
}

func TestMemoryActiveStopLatestWins(t *testing.T) {
	led := NewMemory()
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	events := []models.StopEvent{
		{TradeID: 1, LegID: 1, Type: models.StopInitial, Price: 90, Timestamp: base.Add(1 * time.Minute)},
		{TradeID: 1, LegID: 1, Type: models.StopTrailing, Price: 95, Timestamp: base.Add(2 * time.Minute)},
		{TradeID: 1, LegID: 2, Type: models.StopInitial, Price: 80, Timestamp: base.Add(3 * time.Minute)},
	}
	for _, ev := range events {
		if err := led.AppendStop(ev); err != nil {
			t.Fatalf("AppendStop: %v", err)
		}
	}

	got, err := led.ActiveStop(1, 1, nil)
	if err != nil {
		t.Fatalf("ActiveStop: %v", err)
	}
	if got == nil || *got != 95 {
		t.Errorf("expected latest stop 95, got %v", got)
	}

	// Other leg unaffected
	got, err = led.ActiveStop(1, 2, nil)
	if err != nil {
		t.Fatalf("ActiveStop: %v", err)
	}
	if got == nil || *got != 80 {
		t.Errorf("expected 80 for leg 2, got %v", got)
	}
}

func TestMemoryActiveStopTieBreakInsertionOrder(t *testing.T) {
	led := NewMemory()
	ts := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	for _, price := range []float64{90, 92, 94} {
		ev := models.StopEvent{TradeID: 1, LegID: 1, Type: models.StopTrailing, Price: price, Timestamp: ts}
		if err := led.AppendStop(ev); err != nil {
			t.Fatalf("AppendStop: %v", err)
		}
	}

	got, err := led.ActiveStop(1, 1, nil)
	if err != nil {
		t.Fatalf("ActiveStop: %v", err)
	}
	if got == nil || *got != 94 {
		t.Errorf("identical timestamps must resolve to the latest insert (94), got %v", got)
	}
}

func TestMemoryAppendStopStampsZeroTimestamp(t *testing.T) {
	led := NewMemory()
	stamp := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	led.now = func() time.Time { return stamp }

	if err := led.AppendStop(models.StopEvent{TradeID: 1, LegID: 1, Type: models.StopInitial, Price: 45}); err != nil {
		t.Fatalf("AppendStop: %v", err)
	}

	stops, err := led.Stops()
	if err != nil {
		t.Fatalf("Stops: %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(stops))
	}
	if !stops[0].Timestamp.Equal(stamp) {
		t.Errorf("expected stamped timestamp %v, got %v", stamp, stops[0].Timestamp)
	}
}

func TestMemoryHasLeg(t *testing.T) {
	led := NewMemory()
	if err := led.AppendTrade(sampleLeg(2, 1)); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}

	known, err := led.HasLeg(2, 1)
	if err != nil {
		t.Fatalf("HasLeg: %v", err)
	}
	if !known {
		t.Error("expected leg (2,1) to be known")
	}

	known, err = led.HasLeg(2, 9)
	if err != nil {
		t.Fatalf("HasLeg: %v", err)
	}
	if known {
		t.Error("expected leg (2,9) to be unknown")
	}
}

func TestMemoryTradesSnapshotIsolated(t *testing.T) {
	led := NewMemory()
	if err := led.AppendTrade(sampleLeg(1, 1)); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}

	legs, err := led.Trades()
	if err != nil {
		t.Fatalf("Trades: %v", err)
	}
	legs[0].Symbol = "MUTATED"

	again, err := led.Trades()
	if err != nil {
		t.Fatalf("Trades: %v", err)
	}
	if again[0].Symbol != "RELIANCE" {
		t.Error("snapshot mutation leaked into the store")
	}
}
