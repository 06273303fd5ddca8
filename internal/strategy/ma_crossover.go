package strategy

import (
	"fmt"

	"RangeTrader/internal/calculator"
	"RangeTrader/internal/model"
)

// MACrossover buys when the fast SMA crosses above the slow SMA and sells on
// the opposite cross.
type MACrossover struct {
	FastPeriod int
	SlowPeriod int
}

// NewMACrossover returns an MACrossover with the given periods.
func NewMACrossover(fast, slow int) *MACrossover {
	return &MACrossover{FastPeriod: fast, SlowPeriod: slow}
}

func (s *MACrossover) Name() string {
	return fmt.Sprintf("MA_Crossover_%d_%d", s.FastPeriod, s.SlowPeriod)
}

func (s *MACrossover) ProduceSignal(bars []model.OHLCV) model.Signal {
	closes := model.Closes(bars)
	if len(closes) < s.SlowPeriod+1 {
		return model.Hold
	}

	fastNow, err := calculator.CalculateSMA(closes, s.FastPeriod)
	if err != nil {
		return model.Hold
	}
	slowNow, err := calculator.CalculateSMA(closes, s.SlowPeriod)
	if err != nil {
		return model.Hold
	}
	prev := closes[:len(closes)-1]
	fastPrev, err := calculator.CalculateSMA(prev, s.FastPeriod)
	if err != nil {
		return model.Hold
	}
	slowPrev, err := calculator.CalculateSMA(prev, s.SlowPeriod)
	if err != nil {
		return model.Hold
	}

	if fastNow > slowNow && fastPrev <= slowPrev {
		return model.Buy
	}
	if fastNow < slowNow && fastPrev >= slowPrev {
		return model.Sell
	}
	return model.Hold
}
