package session

import (
	"sync"
	"testing"
	"time"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

func newTestManager() *Manager {
	return NewManager(func() (ledger.Ledger, error) {
		return ledger.NewMemory(), nil
	})
}

func testLeg(tradeID int) models.TradeLeg {
	return models.TradeLeg{
		TradeID: tradeID, LegID: 1, Exchange: models.NSE, Symbol: "SBIN",
		Multiplier: 1, Instrument: models.InstrumentEquity, Direction: models.DirectionLong,
		EntryTime: time.Now(), Conviction: 50, Status: models.StatusOpen,
	}
}

func TestGetSameKeySameLedger(t *testing.T) {
	m := newTestManager()

	a, err := m.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := m.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a != b {
		t.Error("same key must return the same ledger")
	}

	c, err := m.Get("bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c == a {
		t.Error("different keys must own different ledgers")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newTestManager()

	alice, _ := m.Get("alice")
	bob, _ := m.Get("bob")

	id, err := alice.NextSuggestedTradeID()
	if err != nil || id != 1 {
		t.Fatalf("fresh alice ledger: id=%d err=%v", id, err)
	}

	// alice's appends must not leak into bob's suggestion
	if err := alice.AppendTrade(testLeg(7)); err != nil {
		t.Fatalf("AppendTrade: %v", err)
	}
	id, err = bob.NextSuggestedTradeID()
	if err != nil || id != 1 {
		t.Errorf("bob sees alice's trades: id=%d err=%v", id, err)
	}
}

func TestReleaseDropsLedger(t *testing.T) {
	m := newTestManager()

	a, _ := m.Get("alice")
	if err := m.Release("alice"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	b, _ := m.Get("alice")
	if a == b {
		t.Error("released key must get a fresh ledger")
	}

	if err := m.Release("unknown"); err != nil {
		t.Errorf("releasing an unknown key must be a no-op, got %v", err)
	}
}

func TestCloseRejectsFurtherGets(t *testing.T) {
	m := newTestManager()
	if _, err := m.Get("alice"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := m.Get("alice"); !apperrors.Is(err, apperrors.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestConcurrentGet(t *testing.T) {
	m := newTestManager()

	var wg sync.WaitGroup
	ledgers := make([]ledger.Ledger, 16)
	for i := range ledgers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			led, err := m.Get("shared")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			ledgers[i] = led
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ledgers); i++ {
		if ledgers[i] != ledgers[0] {
			t.Fatal("concurrent Gets for one key must agree on a single ledger")
		}
	}
}
