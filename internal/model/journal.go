package model

import "time"

// JournalEntry is one persisted daily-signal record.
type JournalEntry struct {
	Timestamp       time.Time `json:"timestamp"`
	Date            string    `json:"date"`
	Price           float64   `json:"price"`
	Signal          string    `json:"signal"`
	Strength        string    `json:"signal_strength"`
	Support         float64   `json:"support"`
	Resistance      float64   `json:"resistance"`
	PositionInRange float64   `json:"position_in_range_pct"`
	RiskRewardRatio float64   `json:"risk_reward_ratio"`
}
