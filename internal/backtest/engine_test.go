package backtest

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"RangeTrader/internal/model"
	"RangeTrader/internal/strategy"
)

// scripted emits a fixed signal at given bar indices and HOLD elsewhere.
type scripted struct {
	name    string
	signals map[int]model.Signal
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) ProduceSignal(bars []model.OHLCV) model.Signal {
	if sig, ok := s.signals[len(bars)-1]; ok {
		return sig
	}
	return model.Hold
}

func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func risingCloses(n int, from, to float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return closes
}

func TestRun_RisingSeriesFullCycle(t *testing.T) {
	bars := barsFromCloses(risingCloses(50, 10, 20))
	strat := &scripted{name: "cycle", signals: map[int]model.Signal{0: model.Buy, 49: model.Sell}}

	result, err := Run(strat, bars, 10000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(result.Trades))
	}
	buy, sell := result.Trades[0], result.Trades[1]
	if buy.Shares != 1000 {
		t.Errorf("expected 1000 shares bought, got %d", buy.Shares)
	}
	if sell.PnL != 10000 {
		t.Errorf("expected 10000 pnl, got %.2f", sell.PnL)
	}
	if sell.HoldDays != 49 {
		t.Errorf("expected 49 hold days, got %d", sell.HoldDays)
	}
	if result.FinalValue != 20000 {
		t.Errorf("expected final value 20000, got %.2f", result.FinalValue)
	}
	if result.TotalReturnPct != 100.00 {
		t.Errorf("expected 100.00%% return, got %.2f", result.TotalReturnPct)
	}
	if result.Summary == nil || result.Summary.WinRate != 100 {
		t.Fatalf("expected 100%% win rate summary, got %+v", result.Summary)
	}
	// Buy & hold earns the same here, so alpha is zero.
	if math.Abs(result.Alpha) > 1e-9 {
		t.Errorf("expected zero alpha, got %.4f", result.Alpha)
	}
}

func TestRun_HoldOnlyNoCompletedTrades(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	strat := &scripted{name: "idle", signals: nil}

	engine := NewEngine(10000, 1.0)
	result, err := engine.Run(strat, barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Trades) != 0 {
		t.Errorf("expected empty ledger, got %d trades", len(result.Trades))
	}
	if result.Summary != nil {
		t.Error("expected nil summary with no completed trades")
	}
	if _, err := engine.Summarize(); !errors.Is(err, ErrNoCompletedTrades) {
		t.Errorf("expected ErrNoCompletedTrades, got %v", err)
	}
	if result.FinalValue != 10000 {
		t.Errorf("capital should be untouched, got %.2f", result.FinalValue)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	strat := &scripted{name: "none"}
	if _, err := Run(strat, nil, 10000, 1.0); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestRun_StateMachineIgnoresRedundantSignals(t *testing.T) {
	bars := barsFromCloses(risingCloses(12, 100, 111))
	strat := &scripted{name: "noisy", signals: map[int]model.Signal{
		1: model.Buy,
		3: model.Buy,  // already long, ignored
		5: model.Sell,
		7: model.Sell, // flat, ignored
		9: model.Buy,
	}}

	result, err := Run(strat, bars, 10000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// BUY(1), SELL(5), BUY(9), forced SELL(11): strictly alternating.
	if len(result.Trades) != 4 {
		t.Fatalf("expected 4 trades, got %d", len(result.Trades))
	}
	for i, tr := range result.Trades {
		want := model.ActionBuy
		if i%2 == 1 {
			want = model.ActionSell
		}
		if tr.Action != want {
			t.Errorf("trade %d: expected %s, got %s", i, want, tr.Action)
		}
	}
	last := result.Trades[3]
	if !last.Final {
		t.Error("expected final trade to be tagged as forced close")
	}
	if last.Date != bars[11].Date {
		t.Error("forced close not at the final bar")
	}
}

func TestRun_PositionSizeFraction(t *testing.T) {
	bars := barsFromCloses(risingCloses(10, 100, 109))
	strat := &scripted{name: "half", signals: map[int]model.Signal{0: model.Buy}}

	result, err := Run(strat, bars, 10000, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Trades[0].Shares != 50 { // floor(10000 × 0.5 / 100)
		t.Errorf("expected 50 shares, got %d", result.Trades[0].Shares)
	}
}

func TestRun_Deterministic(t *testing.T) {
	bars := barsFromCloses(risingCloses(40, 20, 35))
	script := map[int]model.Signal{2: model.Buy, 15: model.Sell, 20: model.Buy, 33: model.Sell}

	a, err := Run(&scripted{name: "det", signals: script}, bars, 10000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Run(&scripted{name: "det", signals: script}, bars, 10000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestCompare_RanksByReturn(t *testing.T) {
	bars := barsFromCloses(risingCloses(30, 10, 20))
	strategies := []*scripted{
		{name: "late", signals: map[int]model.Signal{20: model.Buy, 29: model.Sell}},
		{name: "early", signals: map[int]model.Signal{0: model.Buy, 29: model.Sell}},
	}

	results, err := Compare([]strategy.Strategy{strategies[0], strategies[1]}, bars, 10000, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].StrategyName != "early" {
		t.Errorf("expected the earlier entry to rank first, got %s", results[0].StrategyName)
	}
	if results[0].TotalReturnPct < results[1].TotalReturnPct {
		t.Error("results not sorted by return descending")
	}
}
