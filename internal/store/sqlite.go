package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"RangeTrader/internal/model"
)

// SQLiteStore persists price history and evaluation results to SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_prices (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker  TEXT NOT NULL,
			date    INTEGER NOT NULL,
			open    REAL,
			high    REAL,
			low     REAL,
			close   REAL,
			volume  REAL,
			UNIQUE(ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_ticker_date ON daily_prices(ticker, date)`,

		`CREATE TABLE IF NOT EXISTS signal_log (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			ticker            TEXT NOT NULL,
			date              INTEGER NOT NULL,
			price             REAL,
			signal            TEXT,
			strength          TEXT,
			support           REAL,
			resistance        REAL,
			position_in_range REAL,
			risk_reward       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_log(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			strategy        TEXT NOT NULL,
			start_date      INTEGER,
			end_date        INTEGER,
			initial_capital REAL,
			final_value     REAL,
			total_return    REAL,
			buy_hold_return REAL,
			alpha           REAL,
			total_trades    INTEGER,
			win_rate        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertBars inserts or replaces daily bars for a ticker.
func (s *SQLiteStore) UpsertBars(ticker string, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_prices (ticker, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(ticker, b.Date.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert bar %s: %w", b.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

// LoadBars returns up to limit most recent bars in ascending date order.
// limit <= 0 loads all stored bars.
func (s *SQLiteStore) LoadBars(ticker string, limit int) ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT date, open, high, low, close, volume FROM daily_prices
		WHERE ticker = ? ORDER BY date DESC`
	args := []interface{}{ticker}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; reverse to chronological order.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// RecordSignal appends one signal evaluation to the log.
func (s *SQLiteStore) RecordSignal(rec *SignalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO signal_log
		(timestamp, ticker, date, price, signal, strength, support, resistance, position_in_range, risk_reward)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Ticker, rec.Date.Unix(), rec.Price,
		rec.Signal.String(), string(rec.Strength),
		rec.Support, rec.Resistance, rec.PositionInRange, rec.RiskReward,
	)
	return err
}

// RecordBacktest persists one backtest summary and returns its id.
func (s *SQLiteStore) RecordBacktest(rec *BacktestRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO backtest_runs
		(id, timestamp, ticker, strategy, start_date, end_date,
		 initial_capital, final_value, total_return, buy_hold_return, alpha, total_trades, win_rate)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), rec.Ticker, rec.StrategyName,
		rec.StartDate.Unix(), rec.EndDate.Unix(),
		rec.InitialCapital, rec.FinalValue, rec.TotalReturnPct,
		rec.BuyHoldPct, rec.Alpha, rec.TotalTrades, rec.WinRatePct,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
