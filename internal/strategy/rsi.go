package strategy

import (
	"fmt"

	"RangeTrader/internal/calculator"
	"RangeTrader/internal/model"
)

// RSIStrategy buys when RSI crosses below the oversold level and sells when
// it crosses above the overbought level.
type RSIStrategy struct {
	Period     int
	Oversold   float64
	Overbought float64
}

// NewRSIStrategy returns an RSIStrategy with the given thresholds.
func NewRSIStrategy(period int, oversold, overbought float64) *RSIStrategy {
	return &RSIStrategy{Period: period, Oversold: oversold, Overbought: overbought}
}

func (s *RSIStrategy) Name() string {
	return fmt.Sprintf("RSI_%d_%.0f_%.0f", s.Period, s.Oversold, s.Overbought)
}

func (s *RSIStrategy) ProduceSignal(bars []model.OHLCV) model.Signal {
	closes := model.Closes(bars)
	if len(closes) < s.Period+2 {
		return model.Hold
	}

	rsiNow, err := calculator.CalculateRSI(closes, s.Period)
	if err != nil {
		return model.Hold
	}
	rsiPrev, err := calculator.CalculateRSI(closes[:len(closes)-1], s.Period)
	if err != nil {
		return model.Hold
	}

	if rsiNow < s.Oversold && rsiPrev >= s.Oversold {
		return model.Buy
	}
	if rsiNow > s.Overbought && rsiPrev <= s.Overbought {
		return model.Sell
	}
	return model.Hold
}
