// Package models provides domain models for the trade journal.
package models

// Exchange represents a stock or derivatives exchange.
type Exchange string

const (
	NSE    Exchange = "NSE"
	BSE    Exchange = "BSE"
	NYSE   Exchange = "NYSE"
	NASDAQ Exchange = "NASDAQ"
	CME    Exchange = "CME"

	ExchangeOther Exchange = "OTHER"
)

// Instrument represents the instrument type of a trade leg.
type Instrument string

const (
	InstrumentEquity  Instrument = "EQUITY"
	InstrumentFutures Instrument = "FUTURES"
	InstrumentOptions Instrument = "OPTIONS"
	InstrumentOther   Instrument = "OTHER"
)

// Direction represents the side of a trade leg.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// TradeStatus represents the lifecycle status of a trade leg.
// The status is caller-set; the journal records it but never transitions it.
type TradeStatus string

const (
	StatusPlanned   TradeStatus = "PLANNED"
	StatusOpen      TradeStatus = "OPEN"
	StatusClosed    TradeStatus = "CLOSED"
	StatusAbandoned TradeStatus = "ABANDONED"
)

// StopType represents the kind of a stop-loss event.
type StopType string

const (
	StopInitial  StopType = "INITIAL"
	StopTrailing StopType = "TRAILING"
)

// MaxTargets is the maximum number of target prices a leg may carry (T1-T5).
const MaxTargets = 5

// ValidExchange reports whether e is a known exchange.
func ValidExchange(e Exchange) bool {
	switch e {
	case NSE, BSE, NYSE, NASDAQ, CME, ExchangeOther:
		return true
	}
	return false
}

// ValidInstrument reports whether i is a known instrument type.
func ValidInstrument(i Instrument) bool {
	switch i {
	case InstrumentEquity, InstrumentFutures, InstrumentOptions, InstrumentOther:
		return true
	}
	return false
}

// ValidDirection reports whether d is a known direction.
func ValidDirection(d Direction) bool {
	return d == DirectionLong || d == DirectionShort
}

// ValidStatus reports whether s is a known trade status.
func ValidStatus(s TradeStatus) bool {
	switch s {
	case StatusPlanned, StatusOpen, StatusClosed, StatusAbandoned:
		return true
	}
	return false
}

// ValidStopType reports whether t is a known stop type.
func ValidStopType(t StopType) bool {
	return t == StopInitial || t == StopTrailing
}
