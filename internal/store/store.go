package store

import (
	"time"

	"RangeTrader/internal/model"
)

// SignalRecord is one persisted signal evaluation.
type SignalRecord struct {
	Ticker          string
	Date            time.Time
	Price           float64
	Signal          model.Signal
	Strength        model.Strength
	Support         float64
	Resistance      float64
	PositionInRange float64
	RiskReward      float64
}

// BacktestRecord summarizes one backtest run.
type BacktestRecord struct {
	ID             string // uuid, assigned by the store if empty
	Ticker         string
	StrategyName   string
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	FinalValue     float64
	TotalReturnPct float64
	BuyHoldPct     float64
	Alpha          float64
	TotalTrades    int
	WinRatePct     float64
}

// Store persists price history and evaluation results.
type Store interface {
	UpsertBars(ticker string, bars []model.OHLCV) error
	LoadBars(ticker string, limit int) ([]model.OHLCV, error)
	RecordSignal(rec *SignalRecord) error
	RecordBacktest(rec *BacktestRecord) (string, error)
	Close() error
}
