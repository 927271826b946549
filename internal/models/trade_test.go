package models

import (
	"testing"
	"time"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
)

func validLeg() TradeLeg {
	return TradeLeg{
		TradeID:    1,
		LegID:      1,
		Exchange:   NSE,
		Symbol:     "RELIANCE",
		Multiplier: 1,
		Instrument: InstrumentEquity,
		Direction:  DirectionLong,
		EntryTime:  time.Now(),
		BuyQty:     100,
		BuyPrice:   2440,
		Conviction: 60,
		Status:     StatusOpen,
	}
}

func TestTradeLegValidateAccepts(t *testing.T) {
	if err := validLeg().Validate(); err != nil {
		t.Fatalf("valid leg rejected: %v", err)
	}
}

func TestTradeLegValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TradeLeg)
	}{
		{"zero trade id", func(l *TradeLeg) { l.TradeID = 0 }},
		{"zero leg id", func(l *TradeLeg) { l.LegID = 0 }},
		{"empty symbol", func(l *TradeLeg) { l.Symbol = "  " }},
		{"unknown exchange", func(l *TradeLeg) { l.Exchange = "LSE" }},
		{"unknown instrument", func(l *TradeLeg) { l.Instrument = "BOND" }},
		{"unknown direction", func(l *TradeLeg) { l.Direction = "FLAT" }},
		{"unknown status", func(l *TradeLeg) { l.Status = "PENDING" }},
		{"zero multiplier", func(l *TradeLeg) { l.Multiplier = 0 }},
		{"negative buy qty", func(l *TradeLeg) { l.BuyQty = -1 }},
		{"negative buy price", func(l *TradeLeg) { l.BuyPrice = -0.5 }},
		{"negative set stop", func(l *TradeLeg) { s := -5.0; l.InitialStop = &s }},
		{"six targets", func(l *TradeLeg) { l.Targets = []float64{1, 2, 3, 4, 5, 6} }},
		{"zero target", func(l *TradeLeg) { l.Targets = []float64{100, 0} }},
		{"negative sell qty", func(l *TradeLeg) { l.SellQty = -1 }},
		{"negative exit price", func(l *TradeLeg) { l.ExitPrice = -1 }},
		{"exit time without sell qty", func(l *TradeLeg) { now := time.Now(); l.ExitTime = &now }},
		{"negative charges", func(l *TradeLeg) { l.Charges = -1 }},
		{"conviction over 100", func(l *TradeLeg) { l.Conviction = 101 }},
		{"negative conviction", func(l *TradeLeg) { l.Conviction = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := validLeg()
			tt.mutate(&leg)
			err := leg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *apperrors.ValidationError
			if !apperrors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestStopEventValidate(t *testing.T) {
	ok := StopEvent{TradeID: 1, LegID: 1, Type: StopTrailing, Price: 95}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	bad := []StopEvent{
		{TradeID: 0, LegID: 1, Type: StopInitial, Price: 95},
		{TradeID: 1, LegID: 0, Type: StopInitial, Price: 95},
		{TradeID: 1, LegID: 1, Type: "HARD", Price: 95},
		{TradeID: 1, LegID: 1, Type: StopInitial, Price: -1},
	}
	for i, ev := range bad {
		if err := ev.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestPricePtr(t *testing.T) {
	if got := PricePtr(0); got != nil {
		t.Errorf("zero must map to unset, got %v", *got)
	}
	if got := PricePtr(45); got == nil || *got != 45 {
		t.Errorf("non-zero must map to a set price, got %v", got)
	}
}

func TestExited(t *testing.T) {
	leg := validLeg()
	if leg.Exited() {
		t.Error("leg with sellQty 0 must not count as exited")
	}
	leg.SellQty = 50
	if !leg.Exited() {
		t.Error("leg with sellQty > 0 must count as exited")
	}
}
