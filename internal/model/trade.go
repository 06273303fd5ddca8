package model

import "time"

// TradeAction is the executed side of a trade record.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// Trade is an immutable ledger record appended on every executed buy or sell.
// PnL fields are populated on closing (SELL) trades only.
type Trade struct {
	Date     time.Time
	Action   TradeAction
	Price    float64
	Shares   int
	Value    float64
	PnL      float64
	PnLPct   float64
	HoldDays int
	Final    bool // forced close at the end of the series
}

// Position is a single open long position.
type Position struct {
	EntryDate  time.Time
	EntryPrice float64
	Shares     int
}

// CostBasis returns the total cost of the position.
func (p Position) CostBasis() float64 {
	return p.EntryPrice * float64(p.Shares)
}

// UnrealizedPnL returns the open profit at the given price.
func (p Position) UnrealizedPnL(currentPrice float64) float64 {
	return (currentPrice - p.EntryPrice) * float64(p.Shares)
}

// UnrealizedPnLPct returns the open profit as a percentage of cost basis.
func (p Position) UnrealizedPnLPct(currentPrice float64) float64 {
	basis := p.CostBasis()
	if basis == 0 {
		return 0
	}
	return p.UnrealizedPnL(currentPrice) / basis * 100
}
