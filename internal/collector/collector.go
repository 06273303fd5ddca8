package collector

import (
	"fmt"
	"time"

	"RangeTrader/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Date:   time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching for one symbol.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Days    int // how many daily bars to request
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, days int) *Collector {
	if days <= 0 {
		days = 300
	}
	return &Collector{Fetcher: fetcher, Symbol: symbol, Days: days}
}

// Collect fetches daily bars and the current price into a PriceSeries.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars returned for %s", c.Symbol)
	}

	price, err := c.Fetcher.FetchCurrentPrice(c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch current price: %w", err)
	}

	return &model.PriceSeries{
		Symbol:       c.Symbol,
		DailyBars:    bars,
		CurrentPrice: price,
		FetchedAt:    time.Now(),
	}, nil
}
