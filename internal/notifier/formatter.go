package notifier

import (
	"fmt"
	"strings"

	"RangeTrader/internal/backtest"
	"RangeTrader/internal/model"
)

func signalEmoji(s model.Signal) string {
	switch s {
	case model.Buy:
		return "🟢"
	case model.Sell:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatSignalReport formats a daily signal report into a Telegram message.
func FormatSignalReport(ticker string, r *model.SignalReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>RangeTrader 日报</b> | %s %s\n\n", ticker, r.Date.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("当前价格: %.2f\n", r.CurrentPrice))
	b.WriteString(fmt.Sprintf("支撑位: %.2f | 阻力位: %.2f\n", r.Support, r.Resistance))
	b.WriteString(fmt.Sprintf("区间宽度: %.2f | 区间位置: %.1f%%\n\n", r.RangeWidth, r.PositionInRange))

	b.WriteString(fmt.Sprintf("%s <b>信号: %s (%s)</b>\n", signalEmoji(r.Signal), r.Signal, r.Strength))
	b.WriteString(fmt.Sprintf("买入阈值: %.2f | 卖出阈值: %.2f\n\n", r.BuyThreshold, r.SellThreshold))

	b.WriteString(fmt.Sprintf("⬆️ 上行空间: %.2f (%.1f%%)\n", r.UpsidePotential, r.UpsidePct))
	b.WriteString(fmt.Sprintf("⬇️ 下行风险: %.2f (%.1f%%)\n", r.DownsideRisk, r.DownsidePct))
	if r.RiskRewardRatio > 0 {
		b.WriteString(fmt.Sprintf("盈亏比: %.2f\n", r.RiskRewardRatio))
	}

	b.WriteString(fmt.Sprintf("\n回看窗口: %d日 | 峰: %d 谷: %d\n", r.LookbackDays, len(r.Peaks), len(r.Troughs)))
	return b.String()
}

// FormatLevels formats detected support/resistance for the /levels command.
func FormatLevels(ticker string, r *model.SignalReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📐 <b>关键价位</b> | %s\n\n", ticker))
	b.WriteString(fmt.Sprintf("阻力位: %.2f\n", r.Resistance))
	b.WriteString(fmt.Sprintf("当前价: %.2f (区间 %.1f%%)\n", r.CurrentPrice, r.PositionInRange))
	b.WriteString(fmt.Sprintf("支撑位: %.2f\n\n", r.Support))
	b.WriteString(fmt.Sprintf("基于近 %d 日的 %d 个峰 / %d 个谷 (时间加权)\n", r.LookbackDays, len(r.Peaks), len(r.Troughs)))
	return b.String()
}

// FormatBacktestResult formats one backtest result for display.
func FormatBacktestResult(res *backtest.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧪 <b>回测结果</b> | %s\n\n", res.StrategyName))
	b.WriteString(fmt.Sprintf("初始资金: %.0f → 期末净值: %.2f\n", res.InitialCapital, res.FinalValue))
	b.WriteString(fmt.Sprintf("总收益: %+.2f%%\n", res.TotalReturnPct))
	b.WriteString(fmt.Sprintf("买入持有: %+.2f%% | 超额: %+.2f%%\n", res.BuyHoldReturnPct, res.Alpha))

	if res.Summary != nil {
		s := res.Summary
		b.WriteString(fmt.Sprintf("\n交易次数: %d (胜 %d / 负 %d, 胜率 %.1f%%)\n",
			s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate))
		b.WriteString(fmt.Sprintf("均盈: %+.2f | 均亏: %+.2f | 平均持仓: %.1f日\n",
			s.AvgWin, s.AvgLoss, s.AvgHoldDays))
	} else {
		b.WriteString("\n无已完成交易\n")
	}
	return b.String()
}
