package store

import (
	"path/filepath"
	"testing"
	"time"

	"RangeTrader/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestUpsertAndLoadBars(t *testing.T) {
	s := openTestStore(t)

	bars := []model.OHLCV{
		{Date: day(0), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Date: day(1), Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 200},
		{Date: day(2), Open: 11.5, High: 13, Low: 11, Close: 12.5, Volume: 300},
	}
	if err := s.UpsertBars("TEST", bars); err != nil {
		t.Fatalf("UpsertBars: %v", err)
	}

	loaded, err := s.LoadBars("TEST", 0)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d bars, want 3", len(loaded))
	}
	for i := range loaded {
		if !loaded[i].Date.Equal(bars[i].Date) || loaded[i].Close != bars[i].Close {
			t.Errorf("bar %d = %+v, want %+v", i, loaded[i], bars[i])
		}
	}
}

func TestUpsertReplacesSameDate(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertBars("TEST", []model.OHLCV{{Date: day(0), Close: 10}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertBars("TEST", []model.OHLCV{{Date: day(0), Close: 11}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	loaded, err := s.LoadBars("TEST", 0)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d bars, want 1", len(loaded))
	}
	if loaded[0].Close != 11 {
		t.Errorf("close = %v, want updated value 11", loaded[0].Close)
	}
}

func TestLoadBarsLimitKeepsMostRecent(t *testing.T) {
	s := openTestStore(t)

	var bars []model.OHLCV
	for i := 0; i < 10; i++ {
		bars = append(bars, model.OHLCV{Date: day(i), Close: float64(i)})
	}
	if err := s.UpsertBars("TEST", bars); err != nil {
		t.Fatalf("UpsertBars: %v", err)
	}

	loaded, err := s.LoadBars("TEST", 3)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d bars, want 3", len(loaded))
	}
	// Most recent 3, ascending.
	for i, want := range []float64{7, 8, 9} {
		if loaded[i].Close != want {
			t.Errorf("loaded[%d].Close = %v, want %v", i, loaded[i].Close, want)
		}
	}
}

func TestRecordSignal(t *testing.T) {
	s := openTestStore(t)

	err := s.RecordSignal(&SignalRecord{
		Ticker:          "TEST",
		Date:            day(5),
		Price:           42.5,
		Signal:          model.Buy,
		Strength:        model.StrengthStrong,
		Support:         40,
		Resistance:      50,
		PositionInRange: 25,
		RiskReward:      3.0,
	})
	if err != nil {
		t.Fatalf("RecordSignal: %v", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM signal_log").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("signal_log rows = %d, want 1", count)
	}
}

func TestRecordBacktestAssignsID(t *testing.T) {
	s := openTestStore(t)

	id, err := s.RecordBacktest(&BacktestRecord{
		Ticker:         "TEST",
		StrategyName:   "Level_Based",
		StartDate:      day(0),
		EndDate:        day(100),
		InitialCapital: 10000,
		FinalValue:     12000,
		TotalReturnPct: 20,
	})
	if err != nil {
		t.Fatalf("RecordBacktest: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	var stored string
	if err := s.db.QueryRow("SELECT strategy FROM backtest_runs WHERE id = ?", id).Scan(&stored); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored != "Level_Based" {
		t.Errorf("strategy = %q, want Level_Based", stored)
	}
}
