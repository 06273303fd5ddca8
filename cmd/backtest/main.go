package main

import (
	"flag"
	"log"

	"RangeTrader/internal/backtest"
	"RangeTrader/internal/collector"
	"RangeTrader/internal/config"
	"RangeTrader/internal/model"
	"RangeTrader/internal/scaled"
	"RangeTrader/internal/store"
	"RangeTrader/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags)

	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker to backtest (defaults to configured ticker)")
	days := flag.Int("days", 0, "daily bars to load (defaults to configured days)")
	source := flag.String("source", "store", "bar source: store, yahoo or mock")
	capital := flag.Float64("capital", 0, "initial capital (defaults to configured value)")
	record := flag.Bool("record", true, "record results to the sqlite store")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *ticker == "" {
		*ticker = cfg.DataSource.Ticker
	}
	if *days == 0 {
		*days = cfg.DataSource.Days
	}
	if *capital == 0 {
		*capital = cfg.Backtest.InitialCapital
	}

	var st store.Store = store.NewNoopStore()
	if cfg.Database.SQLitePath != "" {
		if ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath); err == nil {
			st = ss
			defer ss.Close()
		} else {
			log.Printf("[WARN] open sqlite store: %v", err)
		}
	}

	bars, err := loadBars(cfg, st, *source, *ticker, *days)
	if err != nil {
		log.Fatalf("[FATAL] load bars: %v", err)
	}
	if len(bars) == 0 {
		log.Fatalf("[FATAL] no bars available for %s (source=%s)", *ticker, *source)
	}
	log.Printf("[INFO] loaded %d bars for %s (%s ~ %s)", len(bars), *ticker,
		bars[0].Date.Format("2006-01-02"), bars[len(bars)-1].Date.Format("2006-01-02"))

	lvl := strategy.NewLevelStrategy()
	lvl.Lookback = cfg.Strategy.Lookback
	lvl.MinDistance = cfg.Strategy.MinDistance
	lvl.BuyThresholdPct = cfg.Strategy.BuyThresholdPct
	lvl.SellThresholdPct = cfg.Strategy.SellThresholdPct

	strategies := []strategy.Strategy{
		lvl,
		&strategy.MACrossover{FastPeriod: 10, SlowPeriod: 30},
		&strategy.RSIStrategy{Period: 14, Oversold: 30, Overbought: 70},
	}

	results, err := backtest.Compare(strategies, bars, *capital, cfg.Backtest.PositionSize)
	if err != nil {
		log.Fatalf("[FATAL] compare strategies: %v", err)
	}

	log.Println("[INFO] ===== single-position results (best first) =====")
	for _, res := range results {
		printResult(res)
		if *record {
			recordResult(st, *ticker, bars, res)
		}
	}

	scaledCfg := scaled.DefaultConfig(*capital)
	scaledCfg.Lookback = cfg.Strategy.Lookback
	scaledCfg.MinDistance = cfg.Strategy.MinDistance
	scaledRes, tracker, err := scaled.Run(bars, scaledCfg)
	if err != nil {
		log.Fatalf("[FATAL] scaled backtest: %v", err)
	}

	log.Println("[INFO] ===== scaled entry/exit result =====")
	log.Printf("[INFO] Scaled_Levels: %.2f -> %.2f (%+.2f%%), buy&hold %+.2f%%, alpha %+.2f%%, trades %d (buys %d / sells %d)",
		scaledRes.InitialCapital, scaledRes.FinalValue, scaledRes.TotalReturnPct,
		scaledRes.BuyHoldReturnPct, scaledRes.Alpha, scaledRes.TotalTrades, scaledRes.Buys, scaledRes.Sells)
	if shares := tracker.PositionShares; shares > 0 {
		log.Printf("[INFO] open position at end: %d shares, cost basis %.2f", shares, tracker.PositionCost)
	}
	if *record {
		if id, err := st.RecordBacktest(&store.BacktestRecord{
			Ticker:         *ticker,
			StrategyName:   "Scaled_Levels",
			StartDate:      bars[0].Date,
			EndDate:        bars[len(bars)-1].Date,
			InitialCapital: scaledRes.InitialCapital,
			FinalValue:     scaledRes.FinalValue,
			TotalReturnPct: scaledRes.TotalReturnPct,
			BuyHoldPct:     scaledRes.BuyHoldReturnPct,
			Alpha:          scaledRes.Alpha,
			TotalTrades:    scaledRes.TotalTrades,
		}); err != nil {
			log.Printf("[ERROR] record scaled run: %v", err)
		} else if id != "" {
			log.Printf("[INFO] scaled run recorded: %s", id)
		}
	}
}

func loadBars(cfg *config.Config, st store.Store, source, ticker string, days int) ([]model.OHLCV, error) {
	switch source {
	case "yahoo":
		fetcher := collector.NewYahooFetcher(cfg.Proxy)
		bars, err := fetcher.FetchDailyBars(ticker, days)
		if err != nil {
			return nil, err
		}
		// Cache for later store-sourced runs.
		if err := st.UpsertBars(ticker, bars); err != nil {
			log.Printf("[WARN] cache bars: %v", err)
		}
		return bars, nil
	case "mock":
		m := &collector.MockFetcher{Price: 100}
		return m.FetchDailyBars(ticker, days)
	default:
		return st.LoadBars(ticker, days)
	}
}

func printResult(res *backtest.Result) {
	log.Printf("[INFO] %s: %.2f -> %.2f (%+.2f%%), buy&hold %+.2f%%, alpha %+.2f%%",
		res.StrategyName, res.InitialCapital, res.FinalValue, res.TotalReturnPct,
		res.BuyHoldReturnPct, res.Alpha)
	if res.Summary != nil {
		s := res.Summary
		log.Printf("[INFO]   trades %d, win rate %.1f%%, avg win %+.2f, avg loss %+.2f, avg hold %.1f days",
			s.TotalTrades, s.WinRate, s.AvgWin, s.AvgLoss, s.AvgHoldDays)
	} else {
		log.Printf("[INFO]   no completed trades")
	}
}

func recordResult(st store.Store, ticker string, bars []model.OHLCV, res *backtest.Result) {
	rec := &store.BacktestRecord{
		Ticker:         ticker,
		StrategyName:   res.StrategyName,
		StartDate:      bars[0].Date,
		EndDate:        bars[len(bars)-1].Date,
		InitialCapital: res.InitialCapital,
		FinalValue:     res.FinalValue,
		TotalReturnPct: res.TotalReturnPct,
		BuyHoldPct:     res.BuyHoldReturnPct,
		Alpha:          res.Alpha,
	}
	if res.Summary != nil {
		rec.TotalTrades = res.Summary.TotalTrades
		rec.WinRatePct = res.Summary.WinRate
	}
	id, err := st.RecordBacktest(rec)
	if err != nil {
		log.Printf("[ERROR] record backtest run: %v", err)
		return
	}
	if id != "" {
		log.Printf("[INFO] run recorded: %s", id)
	}
}
