package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// MemoryLedger is the canonical session-scoped backend. The two tables live
// in process memory for the lifetime of the session; nothing survives a
// restart. The mutex exists so one ledger can be shared between the CLI and
// the session registry, not because the journal itself is concurrent.
type MemoryLedger struct {
	mu     sync.RWMutex
	trades []models.TradeLeg
	stops  []models.StopEvent
	now    func() time.Time
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *MemoryLedger {
	return &MemoryLedger{now: time.Now}
}

// NextSuggestedTradeID returns 1 when the trades table is empty, otherwise
// max(TradeID)+1.
func (m *MemoryLedger) NextSuggestedTradeID() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	max := 0
	for _, t := range m.trades {
		if t.TradeID > max {
			max = t.TradeID
		}
	}
	return max + 1, nil
}

// AppendTrade inserts the leg unconditionally.
func (m *MemoryLedger) AppendTrade(leg models.TradeLeg) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trades = append(m.trades, leg)
	return nil
}

// AppendStop inserts the event unconditionally, stamping a zero timestamp
// with the current time.
func (m *MemoryLedger) AppendStop(ev models.StopEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = m.now()
	}
	m.stops = append(m.stops, ev)
	return nil
}

// ActiveStop returns the latest stop price for the key, or def unchanged
// when no events match. The sort is stable so identical timestamps keep
// insertion order and the latest insert wins.
func (m *MemoryLedger) ActiveStop(tradeID, legID int, def *float64) (*float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.StopEvent
	for _, ev := range m.stops {
		if ev.TradeID == tradeID && ev.LegID == legID {
			matched = append(matched, ev)
		}
	}
	if len(matched) == 0 {
		return def, nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	price := matched[len(matched)-1].Price
	return &price, nil
}

// Trades returns a copy of the trades table in insertion order.
func (m *MemoryLedger) Trades() ([]models.TradeLeg, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.TradeLeg, len(m.trades))
	copy(out, m.trades)
	return out, nil
}

// Stops returns a copy of the stops table in insertion order.
func (m *MemoryLedger) Stops() ([]models.StopEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.StopEvent, len(m.stops))
	copy(out, m.stops)
	return out, nil
}

// HasLeg reports whether at least one leg with the given key exists.
func (m *MemoryLedger) HasLeg(tradeID, legID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.trades {
		if t.TradeID == tradeID && t.LegID == legID {
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryLedger) Close() error {
	return nil
}
