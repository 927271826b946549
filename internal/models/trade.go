package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
)

// TradeLeg represents one execution unit of a trade, identified by the
// (TradeID, LegID) pair. The journal is append-only: legs are never updated
// in place, corrections happen by appending new rows.
type TradeLeg struct {
	TradeID    int
	LegID      int
	Exchange   Exchange
	Symbol     string
	Multiplier float64 // lot size, 1 for equities
	Instrument Instrument
	Direction  Direction
	EntryTime  time.Time
	Strategy   string
	BuyQty     float64
	BuyPrice   float64
	// InitialStop is nil when the trader entered without a planned stop.
	// A zero price at the input boundary maps to nil, never to a real 0.
	InitialStop *float64
	Targets     []float64 // up to MaxTargets prices, T1..T5
	SellQty     float64   // 0 = not yet exited
	ExitPrice   float64
	ExitTime    *time.Time // present only when SellQty > 0
	Charges     float64    // all-inclusive
	Catalyst    string
	Conviction  int // 0-100
	Notes       string
	Status      TradeStatus
}

// StopEvent represents one stop-loss adjustment for a leg. The reference to
// (TradeID, LegID) is weak: the event survives even if no matching leg exists.
type StopEvent struct {
	TradeID   int
	LegID     int
	Type      StopType
	Price     float64
	Timestamp time.Time // stamped by the ledger when zero
}

// PricePtr converts a boundary price value to an optional price.
// Zero means "unset" at the input surface and becomes nil here.
func PricePtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

// Validate checks a trade leg at construction time. It rejects the inputs
// the original journal silently zero-defaulted: empty symbols, negative
// quantities and prices, and out-of-range scores.
func (l TradeLeg) Validate() error {
	if l.TradeID <= 0 {
		return apperrors.NewValidationError("trade_id", l.TradeID, "must be positive")
	}
	if l.LegID <= 0 {
		return apperrors.NewValidationError("leg_id", l.LegID, "must be positive")
	}
	if strings.TrimSpace(l.Symbol) == "" {
		return apperrors.NewValidationError("symbol", l.Symbol, "must not be empty")
	}
	if !ValidExchange(l.Exchange) {
		return apperrors.NewValidationError("exchange", l.Exchange, "unknown exchange")
	}
	if !ValidInstrument(l.Instrument) {
		return apperrors.NewValidationError("instrument", l.Instrument, "unknown instrument type")
	}
	if !ValidDirection(l.Direction) {
		return apperrors.NewValidationError("direction", l.Direction, "must be LONG or SHORT")
	}
	if !ValidStatus(l.Status) {
		return apperrors.NewValidationError("status", l.Status, "unknown status")
	}
	if l.Multiplier <= 0 {
		return apperrors.NewValidationError("multiplier", l.Multiplier, "must be positive")
	}
	if l.BuyQty < 0 {
		return apperrors.NewValidationError("buy_qty", l.BuyQty, "must not be negative")
	}
	if l.BuyPrice < 0 {
		return apperrors.NewValidationError("buy_price", l.BuyPrice, "must not be negative")
	}
	if l.InitialStop != nil && *l.InitialStop <= 0 {
		return apperrors.NewValidationError("initial_stop", *l.InitialStop, "must be positive when set")
	}
	if len(l.Targets) > MaxTargets {
		return apperrors.NewValidationError("targets", len(l.Targets), "at most five target prices")
	}
	for i, t := range l.Targets {
		if t <= 0 {
			return apperrors.NewValidationError("targets", t, fmt.Sprintf("target T%d must be positive", i+1))
		}
	}
	if l.SellQty < 0 {
		return apperrors.NewValidationError("sell_qty", l.SellQty, "must not be negative")
	}
	if l.ExitPrice < 0 {
		return apperrors.NewValidationError("exit_price", l.ExitPrice, "must not be negative")
	}
	if l.ExitTime != nil && l.SellQty == 0 {
		return apperrors.NewValidationError("exit_time", l.ExitTime, "requires a sell quantity")
	}
	if l.Charges < 0 {
		return apperrors.NewValidationError("charges", l.Charges, "must not be negative")
	}
	if l.Conviction < 0 || l.Conviction > 100 {
		return apperrors.NewValidationError("conviction", l.Conviction, "must be between 0 and 100")
	}
	return nil
}

// Validate checks a stop event at construction time.
func (e StopEvent) Validate() error {
	if e.TradeID <= 0 {
		return apperrors.NewValidationError("trade_id", e.TradeID, "must be positive")
	}
	if e.LegID <= 0 {
		return apperrors.NewValidationError("leg_id", e.LegID, "must be positive")
	}
	if !ValidStopType(e.Type) {
		return apperrors.NewValidationError("stop_type", e.Type, "must be INITIAL or TRAILING")
	}
	if e.Price < 0 {
		return apperrors.NewValidationError("stop_price", e.Price, "must not be negative")
	}
	return nil
}

// Exited reports whether the leg has recorded an exit.
func (l TradeLeg) Exited() bool {
	return l.SellQty > 0
}
