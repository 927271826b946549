package metrics

import (
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/models"
)

// Summary aggregates realized performance over closed legs.
type Summary struct {
	TotalLegs    int
	ClosedLegs   int
	Wins         int     // closed legs with positive gross P&L
	Losses       int     // closed legs with zero or negative gross P&L
	WinRate      float64 // percent, 0 when no closed legs
	GrossProfit  float64
	GrossLoss    float64 // negative or zero
	NetPnL       float64
	TotalCharges float64

	// ProfitFactor is gross profit over absolute gross loss; nil when no
	// losing leg exists to divide by.
	ProfitFactor *float64

	// Expectancy is net P&L per closed leg; nil when nothing has closed.
	Expectancy *float64

	// AvgRMultiple averages RMultiple over legs where it is defined.
	AvgRMultiple *float64
}

// Summarize computes a performance summary over every leg in the ledger.
// Only exited legs contribute to the realized statistics.
func Summarize(led ledger.Ledger) (Summary, error) {
	legs, err := led.Trades()
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	s.TotalLegs = len(legs)

	var rSum float64
	var rCount int

	for _, leg := range legs {
		if !leg.Exited() {
			continue
		}
		s.ClosedLegs++

		m, err := Compute(leg, led)
		if err != nil {
			return Summary{}, err
		}

		s.NetPnL += m.NetPnL
		s.TotalCharges += leg.Charges
		// Classification and accumulation share the gross basis, so
		// GrossLoss can never collect a positive amount.
		if m.GrossPnL > 0 {
			s.Wins++
			s.GrossProfit += m.GrossPnL
		} else {
			s.Losses++
			s.GrossLoss += m.GrossPnL
		}

		if m.RMultiple != nil {
			rSum += *m.RMultiple
			rCount++
		}
	}

	if s.ClosedLegs > 0 {
		s.WinRate = float64(s.Wins) / float64(s.ClosedLegs) * 100
		expectancy := s.NetPnL / float64(s.ClosedLegs)
		s.Expectancy = &expectancy
	}
	if s.GrossLoss != 0 {
		pf := s.GrossProfit / (-s.GrossLoss)
		s.ProfitFactor = &pf
	}
	if rCount > 0 {
		avg := rSum / float64(rCount)
		s.AvgRMultiple = &avg
	}

	return s, nil
}

// legsByStatus is a small helper for the report command.
func legsByStatus(legs []models.TradeLeg) map[models.TradeStatus]int {
	out := make(map[models.TradeStatus]int)
	for _, l := range legs {
		out[l.Status]++
	}
	return out
}

// CountByStatus returns how many legs carry each lifecycle status.
func CountByStatus(led ledger.Ledger) (map[models.TradeStatus]int, error) {
	legs, err := led.Trades()
	if err != nil {
		return nil, err
	}
	return legsByStatus(legs), nil
}
