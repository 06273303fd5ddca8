package scaled

import (
	"errors"
	"math"

	"RangeTrader/internal/detector"
	"RangeTrader/internal/levels"
	"RangeTrader/internal/model"
)

// ErrInsufficientBars is returned when the series is shorter than the
// lookback warmup.
var ErrInsufficientBars = errors.New("not enough bars for scaled backtest")

// Config controls the scaled entry/exit simulation.
type Config struct {
	InitialCapital float64
	Lookback       int
	MinDistance    int
	NumPeaks       int
	NumTroughs     int
}

// DefaultConfig matches the production scaled strategy settings.
func DefaultConfig(initialCapital float64) Config {
	return Config{
		InitialCapital: initialCapital,
		Lookback:       60,
		MinDistance:    5,
		NumPeaks:       3,
		NumTroughs:     3,
	}
}

// Result summarizes a scaled backtest run.
type Result struct {
	InitialCapital   float64
	FinalValue       float64
	TotalReturn      float64
	TotalReturnPct   float64
	BuyHoldReturnPct float64
	Alpha            float64
	TotalTrades      int
	Buys             int
	Sells            int
}

// tierFlags records which entry/exit tiers have fired in the current
// position cycle. Each flag flips false→true at most once per cycle and all
// reset together when the position returns to flat.
type tierFlags struct {
	Tier1 bool // 80% toward the level
	Tier2 bool // 90% toward the level
	Tier3 bool // at the level
}

func (f *tierFlags) reset() { *f = tierFlags{} }

// Run replays the scaled entry/exit strategy: buy 30%/30%/remaining cash as
// price descends to 20%/10%/2% of the range, sell 30%/30%/remaining position
// as it climbs to 80%/90%/98%. Levels are recomputed per bar from the
// preceding history only.
func Run(bars []model.OHLCV, cfg Config) (*Result, *Tracker, error) {
	if len(bars) <= cfg.Lookback {
		return nil, nil, ErrInsufficientBars
	}

	tracker := NewTracker(cfg.InitialCapital)
	var buyHit, sellHit tierFlags

	for i := cfg.Lookback; i < len(bars); i++ {
		history := bars[:i]
		peaks, troughs := detector.FindDistributed(history, cfg.Lookback, cfg.MinDistance, cfg.NumPeaks, cfg.NumTroughs)
		lv, err := levels.Estimate(peaks, troughs, history[len(history)-1].Date)
		if err != nil {
			continue // indeterminate levels, skip the bar
		}
		width := lv.Width()
		if width <= 0 {
			continue // degenerate range, thresholds untrustworthy
		}

		price := bars[i].Close
		date := bars[i].Date
		posPct := (price - lv.Support) / width * 100

		if tracker.PositionShares == 0 {
			buyHit.reset()
			sellHit.reset()
		}

		// Entry tiers, checked top-down; the order is part of the contract.
		switch {
		case posPct <= 2 && buyHit.Tier1 && buyHit.Tier2 && !buyHit.Tier3:
			if tracker.Buy(date, price, 1.0) > 0 { // all remaining cash
				buyHit.Tier3 = true
			}
		case posPct <= 10 && buyHit.Tier1 && !buyHit.Tier2:
			if tracker.Buy(date, price, 0.30) > 0 {
				buyHit.Tier2 = true
			}
		case posPct <= 20 && !buyHit.Tier1:
			if tracker.Buy(date, price, 0.30) > 0 {
				buyHit.Tier1 = true
			}
		}

		// Exit tiers.
		if tracker.PositionShares > 0 {
			switch {
			case posPct >= 98 && sellHit.Tier1 && sellHit.Tier2 && !sellHit.Tier3:
				if tracker.Sell(date, price, 1.0) > 0 { // all remaining shares
					sellHit.Tier3 = true
				}
			case posPct >= 90 && sellHit.Tier1 && !sellHit.Tier2:
				if tracker.Sell(date, price, 0.30) > 0 {
					sellHit.Tier2 = true
				}
			case posPct >= 80 && !sellHit.Tier1:
				if tracker.Sell(date, price, 0.30) > 0 {
					sellHit.Tier1 = true
				}
			}
		}
	}

	finalPrice := bars[len(bars)-1].Close
	finalValue := tracker.PortfolioValue(finalPrice)

	bhShares := math.Floor(cfg.InitialCapital / bars[cfg.Lookback].Close)
	bhValue := bhShares * finalPrice
	bhReturnPct := (bhValue - cfg.InitialCapital) / cfg.InitialCapital * 100

	result := &Result{
		InitialCapital:   cfg.InitialCapital,
		FinalValue:       finalValue,
		TotalReturn:      finalValue - cfg.InitialCapital,
		TotalReturnPct:   (finalValue - cfg.InitialCapital) / cfg.InitialCapital * 100,
		BuyHoldReturnPct: bhReturnPct,
		TotalTrades:      len(tracker.Trades),
	}
	result.Alpha = result.TotalReturnPct - bhReturnPct
	for _, t := range tracker.Trades {
		if t.Action == model.ActionBuy {
			result.Buys++
		} else {
			result.Sells++
		}
	}
	return result, tracker, nil
}
