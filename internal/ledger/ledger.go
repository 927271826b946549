// Package ledger provides the append-only trade and stop tables that back
// the journal. Two backends implement the same contract: an in-memory
// session-scoped store and an opt-in SQLite store for durability.
package ledger

import (
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// Ledger defines the append/query contract shared by all backends.
//
// Both tables are append-only: there is no update or delete. Corrections are
// made by appending new rows (stop trailing) and are otherwise unsupported.
// Duplicate (TradeID, LegID) pairs are accepted; the store never dedups.
type Ledger interface {
	// NextSuggestedTradeID returns 1 when the trades table is empty,
	// otherwise max(TradeID)+1. Pure query, no side effect. The caller may
	// override the suggestion.
	NextSuggestedTradeID() (int, error)

	// AppendTrade inserts the leg unconditionally, preserving insertion
	// order. Insertion order matters only for display and export.
	AppendTrade(leg models.TradeLeg) error

	// AppendStop inserts the event unconditionally. A zero timestamp is
	// replaced with the current time before insertion.
	AppendStop(ev models.StopEvent) error

	// ActiveStop returns the price of the latest stop event recorded for
	// (tradeID, legID), or def unchanged when no events match. Events with
	// identical timestamps resolve in insertion order, latest insert wins.
	ActiveStop(tradeID, legID int, def *float64) (*float64, error)

	// Trades returns a snapshot of the trades table in insertion order.
	Trades() ([]models.TradeLeg, error)

	// Stops returns a snapshot of the stops table in insertion order.
	Stops() ([]models.StopEvent, error)

	// HasLeg reports whether at least one leg with the given key exists.
	HasLeg(tradeID, legID int) (bool, error)

	// Close releases backend resources.
	Close() error
}
