package backtest

import (
	"errors"
	"log"
	"math"
	"sort"

	"RangeTrader/internal/model"
	"RangeTrader/internal/strategy"
)

// ErrNoData is returned when a backtest is started with zero bars.
var ErrNoData = errors.New("no price data provided")

// ErrNoCompletedTrades is returned when a performance summary is requested
// before any closing trade exists.
var ErrNoCompletedTrades = errors.New("no completed trades")

// Summary aggregates closed-trade performance metrics.
type Summary struct {
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	TotalPnL       float64
	AvgPnL         float64
	AvgWin         float64
	AvgLoss        float64
	AvgHoldDays    float64
	TotalReturnPct float64
}

// Result is the full outcome of a single backtest run.
type Result struct {
	StrategyName     string
	InitialCapital   float64
	FinalValue       float64
	TotalReturn      float64
	TotalReturnPct   float64
	BuyHoldReturnPct float64
	Alpha            float64
	Trades           []model.Trade
	Summary          *Summary // nil when no trade completed
}

// Engine replays a strategy's per-bar signals against close prices and keeps
// a single-position ledger. Each run owns its own Engine; no state is shared
// across runs.
type Engine struct {
	InitialCapital float64
	PositionSize   float64 // fraction of available cash per entry, (0, 1]

	cash     float64
	position *model.Position
	trades   []model.Trade
}

// NewEngine creates an Engine. A non-positive position size defaults to 1.0.
func NewEngine(initialCapital, positionSize float64) *Engine {
	if positionSize <= 0 || positionSize > 1 {
		positionSize = 1.0
	}
	return &Engine{InitialCapital: initialCapital, PositionSize: positionSize}
}

// Run evolves the ledger bar by bar in chronological order. An open position
// at the end of the series is force-closed at the final bar's price.
func (e *Engine) Run(strat strategy.Strategy, bars []model.OHLCV) (*Result, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	e.cash = e.InitialCapital
	e.position = nil
	e.trades = nil

	for i := range bars {
		sig := strat.ProduceSignal(bars[:i+1])
		if sig == model.Hold {
			continue
		}
		e.execute(bars[i], sig, false)
	}

	// Force-close an open position at the final bar.
	if e.position != nil {
		e.execute(bars[len(bars)-1], model.Sell, true)
	}

	finalPrice := bars[len(bars)-1].Close
	finalValue := e.cash
	if e.position != nil {
		finalValue += float64(e.position.Shares) * finalPrice
	}

	result := &Result{
		StrategyName:   strat.Name(),
		InitialCapital: e.InitialCapital,
		FinalValue:     finalValue,
		TotalReturn:    finalValue - e.InitialCapital,
		TotalReturnPct: (finalValue - e.InitialCapital) / e.InitialCapital * 100,
		Trades:         e.trades,
	}

	// Buy-and-hold benchmark, computed independently of the strategy.
	bhShares := math.Floor(e.InitialCapital / bars[0].Close)
	bhValue := bhShares * finalPrice
	result.BuyHoldReturnPct = (bhValue - e.InitialCapital) / e.InitialCapital * 100
	result.Alpha = result.TotalReturnPct - result.BuyHoldReturnPct

	if summary, err := e.Summarize(); err == nil {
		result.Summary = summary
	}

	return result, nil
}

// execute applies one non-HOLD signal to the ledger. Buys while long and
// sells while flat are ignored.
func (e *Engine) execute(bar model.OHLCV, sig model.Signal, final bool) {
	price := bar.Close

	switch sig {
	case model.Buy:
		if e.position != nil {
			return // no pyramiding
		}
		shares := int(e.cash * e.PositionSize / price)
		if shares < 1 {
			return
		}
		cost := float64(shares) * price
		e.cash -= cost
		e.position = &model.Position{EntryDate: bar.Date, EntryPrice: price, Shares: shares}
		e.trades = append(e.trades, model.Trade{
			Date:   bar.Date,
			Action: model.ActionBuy,
			Price:  price,
			Shares: shares,
			Value:  cost,
		})

	case model.Sell:
		if e.position == nil {
			return
		}
		proceeds := float64(e.position.Shares) * price
		pnl := e.position.UnrealizedPnL(price)
		pnlPct := e.position.UnrealizedPnLPct(price)
		holdDays := int(bar.Date.Sub(e.position.EntryDate).Hours() / 24)

		e.cash += proceeds
		e.trades = append(e.trades, model.Trade{
			Date:     bar.Date,
			Action:   model.ActionSell,
			Price:    price,
			Shares:   e.position.Shares,
			Value:    proceeds,
			PnL:      pnl,
			PnLPct:   pnlPct,
			HoldDays: holdDays,
			Final:    final,
		})
		e.position = nil
	}
}

// Summarize computes closed-trade statistics from the current ledger.
func (e *Engine) Summarize() (*Summary, error) {
	var closed []model.Trade
	for _, t := range e.trades {
		if t.Action == model.ActionSell {
			closed = append(closed, t)
		}
	}
	if len(closed) == 0 {
		return nil, ErrNoCompletedTrades
	}

	s := &Summary{TotalTrades: len(closed)}
	var winSum, lossSum float64
	var holdSum int
	for _, t := range closed {
		s.TotalPnL += t.PnL
		holdSum += t.HoldDays
		if t.PnL > 0 {
			s.WinningTrades++
			winSum += t.PnL
		} else if t.PnL < 0 {
			s.LosingTrades++
			lossSum += t.PnL
		}
	}
	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	s.AvgPnL = s.TotalPnL / float64(s.TotalTrades)
	if s.WinningTrades > 0 {
		s.AvgWin = winSum / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = lossSum / float64(s.LosingTrades)
	}
	s.AvgHoldDays = float64(holdSum) / float64(s.TotalTrades)
	s.TotalReturnPct = s.TotalPnL / e.InitialCapital * 100
	return s, nil
}

// Run is a convenience wrapper creating a fresh Engine for one backtest.
func Run(strat strategy.Strategy, bars []model.OHLCV, initialCapital, positionSize float64) (*Result, error) {
	return NewEngine(initialCapital, positionSize).Run(strat, bars)
}

// Compare runs each strategy over the same bars with an independently
// initialized engine and returns results sorted by total return descending.
func Compare(strategies []strategy.Strategy, bars []model.OHLCV, initialCapital, positionSize float64) ([]*Result, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	results := make([]*Result, 0, len(strategies))
	for _, s := range strategies {
		r, err := Run(s, bars, initialCapital, positionSize)
		if err != nil {
			log.Printf("[WARN] backtest for %s failed: %v", s.Name(), err)
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalReturnPct > results[j].TotalReturnPct
	})
	return results, nil
}
