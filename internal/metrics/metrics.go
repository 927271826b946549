// Package metrics derives P&L, risk and holding-period values from a trade
// leg and its stop history. Every ratio is guarded: a metric whose basis is
// unset comes back nil, never zero, so callers can tell "no data" from a
// genuine zero result.
package metrics

import (
	"time"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// LegMetrics holds the derived read-only values for one trade leg.
// Pointer fields are absent when their basis is undefined.
type LegMetrics struct {
	TotalBuy  float64
	TotalSell float64
	GrossPnL  float64
	NetPnL    float64

	// ActiveStop is the latest recorded stop for the leg, falling back to
	// the leg's own initial stop; nil when neither exists.
	ActiveStop *float64

	// OriginalRiskPerShare is buy price minus initial stop; nil when the
	// leg was entered without a planned stop.
	OriginalRiskPerShare *float64

	// ActiveRiskPerShare is buy price minus the active stop.
	ActiveRiskPerShare *float64

	// RMultiple is the realized gain per share as a multiple of the
	// original planned risk; defined only for a positive risk basis and a
	// recorded exit price.
	RMultiple *float64

	// LockedR is the fraction of original risk guaranteed by a stop at or
	// above breakeven; nil while the active stop sits below the entry.
	LockedR *float64

	// HoldingDays is the whole-day difference between exit and entry,
	// floored at zero. Nil until the leg records an exit.
	HoldingDays *int
}

// FindLeg returns the current version of the (tradeID, legID) leg. Duplicate
// keys are legal in the ledger; the latest appended row wins. Returns
// ErrLegNotFound when no row matches.
func FindLeg(led ledger.Ledger, tradeID, legID int) (models.TradeLeg, error) {
	legs, err := led.Trades()
	if err != nil {
		return models.TradeLeg{}, err
	}

	var leg models.TradeLeg
	found := false
	for i := range legs {
		if legs[i].TradeID == tradeID && legs[i].LegID == legID {
			leg = legs[i]
			found = true
		}
	}
	if !found {
		return models.TradeLeg{}, apperrors.Wrapf(apperrors.ErrLegNotFound, "leg (%d, %d)", tradeID, legID)
	}
	return leg, nil
}

// Compute derives the full metric set for one leg, reading the leg's stop
// history through the ledger's ActiveStop query.
func Compute(leg models.TradeLeg, led ledger.Ledger) (LegMetrics, error) {
	var m LegMetrics

	m.TotalBuy = leg.BuyQty * leg.BuyPrice * leg.Multiplier
	m.TotalSell = leg.SellQty * leg.ExitPrice * leg.Multiplier
	m.GrossPnL = m.TotalSell - m.TotalBuy
	m.NetPnL = m.GrossPnL - leg.Charges

	activeStop, err := led.ActiveStop(leg.TradeID, leg.LegID, leg.InitialStop)
	if err != nil {
		return LegMetrics{}, err
	}
	m.ActiveStop = activeStop

	if leg.InitialStop != nil {
		risk := leg.BuyPrice - *leg.InitialStop
		m.OriginalRiskPerShare = &risk
	}

	if activeStop != nil {
		activeRisk := leg.BuyPrice - *activeStop
		m.ActiveRiskPerShare = &activeRisk
	}

	if m.OriginalRiskPerShare != nil && *m.OriginalRiskPerShare > 0 {
		if leg.ExitPrice > 0 {
			r := (leg.ExitPrice - leg.BuyPrice) / *m.OriginalRiskPerShare
			m.RMultiple = &r
		}
		if activeStop != nil && *activeStop >= leg.BuyPrice {
			locked := (*activeStop - leg.BuyPrice) / *m.OriginalRiskPerShare
			m.LockedR = &locked
		}
	}

	if leg.ExitTime != nil && !leg.EntryTime.IsZero() {
		days := holdingDays(leg.EntryTime, *leg.ExitTime)
		m.HoldingDays = &days
	}

	return m, nil
}

// holdingDays truncates to whole days and floors negative differences to
// zero, masking exit-before-entry data-entry errors rather than surfacing
// them. This matches the recorded journal behavior.
func holdingDays(entry, exit time.Time) int {
	days := int(exit.Sub(entry) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
