package strategy

import (
	"errors"
	"testing"
	"time"

	"RangeTrader/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

// rangeBoundCloses produces a triangle wave between 40 and 60 with a 20-bar
// period: troughs at i%20 == 0, peaks at i%20 == 10.
func rangeBoundCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		p := i % 20
		if p <= 10 {
			closes[i] = 40 + 2*float64(p)
		} else {
			closes[i] = 40 + 2*float64(20-p)
		}
	}
	return closes
}

func TestLevelStrategy_BuyNearSupport(t *testing.T) {
	bars := barsFromCloses(rangeBoundCloses(130))
	s := NewLevelStrategy()

	// Bar 120 sits exactly at a 40.00 trough.
	if sig := s.ProduceSignal(bars[:121]); sig != model.Buy {
		t.Errorf("expected BUY at support, got %v", sig)
	}
	// Bar 110 sits exactly at a 60.00 peak.
	if sig := s.ProduceSignal(bars[:111]); sig != model.Sell {
		t.Errorf("expected SELL at resistance, got %v", sig)
	}
	// Bar 105 is mid-range at 50.00.
	if sig := s.ProduceSignal(bars[:106]); sig != model.Hold {
		t.Errorf("expected HOLD mid-range, got %v", sig)
	}
}

func TestLevelStrategy_InsufficientHistory(t *testing.T) {
	bars := barsFromCloses(rangeBoundCloses(30))
	s := NewLevelStrategy()

	if sig := s.ProduceSignal(bars); sig != model.Hold {
		t.Errorf("expected HOLD with short history, got %v", sig)
	}
	if _, err := s.CurrentSignal(bars); !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestLevelStrategy_CurrentSignalReport(t *testing.T) {
	bars := barsFromCloses(rangeBoundCloses(121)) // last bar at the 40.00 trough
	s := NewLevelStrategy()

	report, err := s.CurrentSignal(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Signal != model.Buy {
		t.Fatalf("expected BUY at support, got %v", report.Signal)
	}
	if report.Strength != model.StrengthModerate && report.Strength != model.StrengthStrong {
		t.Errorf("expected a buy strength classification, got %q", report.Strength)
	}
	if report.Support < 39 || report.Support > 42 {
		t.Errorf("support %.2f outside expected band", report.Support)
	}
	if report.Resistance < 58 || report.Resistance > 61 {
		t.Errorf("resistance %.2f outside expected band", report.Resistance)
	}
	if report.RiskRewardRatio < 0 {
		t.Errorf("negative risk/reward ratio %.2f", report.RiskRewardRatio)
	}
	if len(report.Peaks) == 0 || len(report.Troughs) == 0 {
		t.Error("report missing contributing extrema")
	}
}

func TestLevelStrategy_CurrentSignalNeutralMidRange(t *testing.T) {
	bars := barsFromCloses(rangeBoundCloses(106)) // last bar mid-range at 50.00
	s := NewLevelStrategy()

	report, err := s.CurrentSignal(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Signal != model.Hold || report.Strength != model.StrengthNeutral {
		t.Errorf("expected neutral HOLD mid-range, got %v/%q", report.Signal, report.Strength)
	}
	if report.RiskRewardRatio != 0 {
		t.Errorf("risk/reward should be 0 outside BUY, got %.2f", report.RiskRewardRatio)
	}
}

func TestMACrossover_SignalsOnCross(t *testing.T) {
	closes := make([]float64, 60)
	for i := 0; i < 30; i++ {
		closes[i] = 100 - 0.5*float64(i)
	}
	for i := 30; i < 60; i++ {
		closes[i] = closes[29] + float64(i-29)
	}
	bars := barsFromCloses(closes)
	s := NewMACrossover(5, 10)

	var buys []int
	for i := 1; i <= len(bars); i++ {
		if s.ProduceSignal(bars[:i]) == model.Buy {
			buys = append(buys, i-1)
		}
	}
	if len(buys) != 1 {
		t.Fatalf("expected exactly one BUY crossover, got %d at %v", len(buys), buys)
	}
	if buys[0] <= 30 {
		t.Errorf("BUY crossover at bar %d, before the uptrend", buys[0])
	}
}

func TestRSIStrategy_BuysOnOversoldCross(t *testing.T) {
	closes := make([]float64, 40)
	for i := 0; i < 20; i++ {
		closes[i] = 100 + 0.1*float64(i)
	}
	for i := 20; i < 40; i++ {
		closes[i] = closes[i-1] - 3
	}
	bars := barsFromCloses(closes)
	s := NewRSIStrategy(14, 30, 70)

	var buys, sells int
	for i := 1; i <= len(bars); i++ {
		switch s.ProduceSignal(bars[:i]) {
		case model.Buy:
			buys++
		case model.Sell:
			sells++
		}
	}
	if buys != 1 {
		t.Errorf("expected exactly one oversold cross BUY, got %d", buys)
	}
	if sells != 0 {
		t.Errorf("expected no SELLs in a decline, got %d", sells)
	}
}
