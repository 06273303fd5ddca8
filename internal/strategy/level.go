package strategy

import (
	"errors"
	"fmt"

	"RangeTrader/internal/detector"
	"RangeTrader/internal/levels"
	"RangeTrader/internal/model"
)

// ErrInsufficientHistory is returned by CurrentSignal when fewer bars than
// the lookback window are available.
var ErrInsufficientHistory = errors.New("insufficient history for signal")

// LevelStrategy trades the time-weighted support/resistance range: buy when
// price falls to just above support, sell when it rises to just below
// resistance.
type LevelStrategy struct {
	Lookback         int
	MinDistance      int
	BuyThresholdPct  float64 // buy at support × (1 + pct/100)
	SellThresholdPct float64 // sell at resistance × (1 − pct/100)
	NumPeaks         int
	NumTroughs       int
}

// NewLevelStrategy returns a LevelStrategy with the production defaults.
func NewLevelStrategy() *LevelStrategy {
	return &LevelStrategy{
		Lookback:         60,
		MinDistance:      5,
		BuyThresholdPct:  2.0,
		SellThresholdPct: 2.0,
		NumPeaks:         3,
		NumTroughs:       3,
	}
}

func (s *LevelStrategy) Name() string {
	return fmt.Sprintf("Level_%d", s.Lookback)
}

// TimeWeightedLevels estimates support and resistance from the distributed
// extrema of the given bars, weighted as of the last bar's date.
func (s *LevelStrategy) TimeWeightedLevels(bars []model.OHLCV) (model.Levels, []model.Extremum, []model.Extremum, error) {
	peaks, troughs := detector.FindDistributed(bars, s.Lookback, s.MinDistance, s.NumPeaks, s.NumTroughs)
	lv, err := levels.Estimate(peaks, troughs, bars[len(bars)-1].Date)
	if err != nil {
		return model.Levels{}, nil, nil, err
	}
	return lv, peaks, troughs, nil
}

// ProduceSignal evaluates the latest bar against levels computed from the
// preceding bars only, so the level estimate never sees the bar it judges.
func (s *LevelStrategy) ProduceSignal(bars []model.OHLCV) model.Signal {
	if len(bars) <= s.Lookback {
		return model.Hold
	}
	history := bars[:len(bars)-1]
	lv, _, _, err := s.TimeWeightedLevels(history)
	if err != nil {
		return model.Hold // indeterminate levels, skip the bar
	}

	price := bars[len(bars)-1].Close
	buyThreshold := lv.Support * (1 + s.BuyThresholdPct/100)
	sellThreshold := lv.Resistance * (1 - s.SellThresholdPct/100)

	// Buy check first: the evaluation order is part of the contract.
	if price <= buyThreshold {
		return model.Buy
	}
	if price >= sellThreshold {
		return model.Sell
	}
	return model.Hold
}

// CurrentSignal analyzes the full history and returns a snapshot report for
// the latest bar: levels, signal, strength, and risk/reward when buying.
func (s *LevelStrategy) CurrentSignal(bars []model.OHLCV) (model.SignalReport, error) {
	if len(bars) < s.Lookback {
		return model.SignalReport{}, ErrInsufficientHistory
	}

	lv, peaks, troughs, err := s.TimeWeightedLevels(bars)
	if err != nil {
		return model.SignalReport{}, fmt.Errorf("estimate levels: %w", err)
	}

	last := bars[len(bars)-1]
	price := last.Close
	buyThreshold := lv.Support * (1 + s.BuyThresholdPct/100)
	sellThreshold := lv.Resistance * (1 - s.SellThresholdPct/100)

	report := model.SignalReport{
		Date:            last.Date,
		CurrentPrice:    price,
		Support:         lv.Support,
		Resistance:      lv.Resistance,
		BuyThreshold:    buyThreshold,
		SellThreshold:   sellThreshold,
		RangeWidth:      lv.Width(),
		PositionInRange: levels.PositionInRange(price, lv),
		UpsidePotential: lv.Resistance - price,
		DownsideRisk:    price - lv.Support,
		Peaks:           peaks,
		Troughs:         troughs,
		LookbackDays:    s.Lookback,
	}
	if price > 0 {
		report.UpsidePct = (lv.Resistance/price - 1) * 100
	}
	if lv.Support > 0 {
		report.DownsidePct = (price/lv.Support - 1) * 100
	}

	switch {
	case price <= buyThreshold:
		report.Signal = model.Buy
		report.Strength = model.StrengthModerate
		if price < lv.Support {
			report.Strength = model.StrengthStrong
		}
		if report.DownsideRisk > 0 {
			report.RiskRewardRatio = report.UpsidePotential / report.DownsideRisk
		}
	case price >= sellThreshold:
		report.Signal = model.Sell
		report.Strength = model.StrengthModerate
		if price > lv.Resistance {
			report.Strength = model.StrengthStrong
		}
	default:
		report.Signal = model.Hold
		report.Strength = model.StrengthNeutral
	}

	return report, nil
}
