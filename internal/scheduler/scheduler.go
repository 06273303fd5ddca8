package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"RangeTrader/internal/backtest"
	"RangeTrader/internal/collector"
	"RangeTrader/internal/journal"
	"RangeTrader/internal/marketcal"
	"RangeTrader/internal/model"
	"RangeTrader/internal/notifier"
	"RangeTrader/internal/store"
	"RangeTrader/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the daily evaluation cron task.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Strategy  *strategy.LevelStrategy
	Journal   *journal.Manager
	Notifier  *notifier.TelegramNotifier
	Store     store.Store
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, strat *strategy.LevelStrategy, jm *journal.Manager, tn *notifier.TelegramNotifier, st store.Store) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Strategy:  strat,
		Journal:   jm,
		Notifier:  tn,
		Store:     st,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily evaluation task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	if !marketcal.IsTradingDay(time.Now()) {
		log.Println("[INFO] not a trading day, skipping daily task")
		return
	}

	log.Println("[INFO] running daily evaluation")
	report, err := s.evaluate()
	if err != nil {
		log.Printf("[ERROR] daily evaluation: %v", err)
		s.trySend(fmt.Sprintf("❌ 日评估失败: %v", err))
		return
	}

	entry := &model.JournalEntry{
		Date:            report.Date.Format("2006-01-02"),
		Price:           report.CurrentPrice,
		Signal:          report.Signal.String(),
		Strength:        string(report.Strength),
		Support:         report.Support,
		Resistance:      report.Resistance,
		PositionInRange: report.PositionInRange,
		RiskRewardRatio: report.RiskRewardRatio,
	}
	if err := s.Journal.Record(entry); err != nil {
		log.Printf("[ERROR] journal record: %v", err)
	}

	if err := s.Store.RecordSignal(&store.SignalRecord{
		Ticker:          s.Collector.Symbol,
		Date:            report.Date,
		Price:           report.CurrentPrice,
		Signal:          report.Signal,
		Strength:        report.Strength,
		Support:         report.Support,
		Resistance:      report.Resistance,
		PositionInRange: report.PositionInRange,
		RiskReward:      report.RiskRewardRatio,
	}); err != nil {
		log.Printf("[ERROR] record signal: %v", err)
	}

	s.trySend(notifier.FormatSignalReport(s.Collector.Symbol, &report))
}

// evaluate fetches fresh data, persists it, and produces the current report.
func (s *Scheduler) evaluate() (model.SignalReport, error) {
	series, err := s.Collector.Collect()
	if err != nil {
		return model.SignalReport{}, fmt.Errorf("collect: %w", err)
	}

	if err := s.Store.UpsertBars(series.Symbol, series.DailyBars); err != nil {
		log.Printf("[ERROR] upsert bars: %v", err)
	}

	report, err := s.Strategy.CurrentSignal(series.DailyBars)
	if err != nil {
		return model.SignalReport{}, fmt.Errorf("current signal: %w", err)
	}
	return report, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "查看信号", "/signal":
		s.dailyTaskNowForCommand()
		return ""
	case "查看价位", "/levels":
		report, err := s.evaluate()
		if err != nil {
			return fmt.Sprintf("❌ 评估失败: %v", err)
		}
		return notifier.FormatLevels(s.Collector.Symbol, &report)
	case "查看回测", "/backtest":
		return s.runQuickBacktest()
	case "查看日志", "/journal":
		entry := s.Journal.Latest()
		if entry == nil {
			return "暂无信号记录"
		}
		return fmt.Sprintf("📓 最近信号 | %s\n价格: %.2f\n信号: %s (%s)\n支撑: %.2f | 阻力: %.2f\n区间位置: %.1f%%",
			entry.Date, entry.Price, entry.Signal, entry.Strength,
			entry.Support, entry.Resistance, entry.PositionInRange)
	default:
		return "可用命令:\n• 查看信号 (/signal)\n• 查看价位 (/levels)\n• 查看回测 (/backtest)\n• 查看日志 (/journal)"
	}
}

// runQuickBacktest replays the configured strategy over the stored history
// and replies with the result.
func (s *Scheduler) runQuickBacktest() string {
	bars, err := s.Store.LoadBars(s.Collector.Symbol, 0)
	if err != nil || len(bars) == 0 {
		series, cerr := s.Collector.Collect()
		if cerr != nil {
			return fmt.Sprintf("❌ 无法获取回测数据: %v", cerr)
		}
		bars = series.DailyBars
	}

	res, err := backtest.Run(s.Strategy, bars, 10000, 1.0)
	if err != nil {
		return fmt.Sprintf("❌ 回测失败: %v", err)
	}
	return notifier.FormatBacktestResult(res)
}

// dailyTaskNowForCommand bypasses the trading-day guard so a manual
// request always answers, even on weekends.
func (s *Scheduler) dailyTaskNowForCommand() {
	report, err := s.evaluate()
	if err != nil {
		s.trySend(fmt.Sprintf("❌ 评估失败: %v", err))
		return
	}
	s.trySend(notifier.FormatSignalReport(s.Collector.Symbol, &report))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
