package scaled

import (
	"time"

	"RangeTrader/internal/model"
)

// Trade is one partial fill recorded by the Tracker.
type Trade struct {
	Date        time.Time
	Action      model.TradeAction
	Price       float64
	Shares      int
	Value       float64 // cost for buys, proceeds for sells
	Fraction    float64 // fraction of cash (buys) or position (sells) requested
	PnL         float64 // closing trades only
	PnLPct      float64
	TotalShares int // position after the fill
	Cash        float64
}

// Tracker maintains a multi-tranche position with weighted cost-basis
// accounting. Each simulation owns its own Tracker.
type Tracker struct {
	InitialCapital float64
	Cash           float64
	PositionShares int
	PositionCost   float64 // aggregate cost basis of currently held shares
	Trades         []Trade
}

// NewTracker creates a Tracker holding only cash.
func NewTracker(initialCapital float64) *Tracker {
	return &Tracker{InitialCapital: initialCapital, Cash: initialCapital}
}

// Buy spends the given fraction of available cash at the given price.
// Returns the number of shares bought; 0 when no cash or the fraction buys
// less than one share.
func (t *Tracker) Buy(date time.Time, price, fractionOfCash float64) int {
	if t.Cash <= 0 {
		return 0
	}
	shares := int(t.Cash * fractionOfCash / price)
	if shares < 1 {
		return 0
	}

	cost := float64(shares) * price
	t.Cash -= cost
	t.PositionShares += shares
	t.PositionCost += cost

	t.Trades = append(t.Trades, Trade{
		Date:        date,
		Action:      model.ActionBuy,
		Price:       price,
		Shares:      shares,
		Value:       cost,
		Fraction:    fractionOfCash,
		TotalShares: t.PositionShares,
		Cash:        t.Cash,
	})
	return shares
}

// Sell disposes the given fraction of the current position at the given
// price, removing cost basis proportionally so the running average stays
// valid for the remaining shares. Returns the number of shares sold.
func (t *Tracker) Sell(date time.Time, price, fractionOfPosition float64) int {
	if t.PositionShares <= 0 {
		return 0
	}
	shares := int(float64(t.PositionShares) * fractionOfPosition)
	if shares < 1 {
		return 0
	}

	proceeds := float64(shares) * price
	avgCost := t.PositionCost / float64(t.PositionShares)
	costSold := float64(shares) * avgCost
	pnl := proceeds - costSold
	pnlPct := 0.0
	if costSold > 0 {
		pnlPct = pnl / costSold * 100
	}

	t.Cash += proceeds
	t.PositionShares -= shares
	t.PositionCost -= costSold
	if t.PositionShares == 0 {
		t.PositionCost = 0 // avoid float residue on a flat position
	}

	t.Trades = append(t.Trades, Trade{
		Date:        date,
		Action:      model.ActionSell,
		Price:       price,
		Shares:      shares,
		Value:       proceeds,
		Fraction:    fractionOfPosition,
		PnL:         pnl,
		PnLPct:      pnlPct,
		TotalShares: t.PositionShares,
		Cash:        t.Cash,
	})
	return shares
}

// PortfolioValue returns cash plus the position marked at the given price.
func (t *Tracker) PortfolioValue(currentPrice float64) float64 {
	return t.Cash + float64(t.PositionShares)*currentPrice
}

// PositionPct returns the current cost basis as a percentage of initial
// capital.
func (t *Tracker) PositionPct() float64 {
	if t.PositionShares == 0 {
		return 0
	}
	return t.PositionCost / t.InitialCapital * 100
}
