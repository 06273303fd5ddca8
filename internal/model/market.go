package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for analysis.
type PriceSeries struct {
	Symbol       string
	DailyBars    []OHLCV
	CurrentPrice float64
	FetchedAt    time.Time
}

// Closes extracts the close prices from a bar sequence.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
