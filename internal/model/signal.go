package model

import "time"

// Signal is a per-bar trading decision.
type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Strength classifies how decisively price has crossed a level.
type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthNeutral  Strength = "NEUTRAL"
)

// SignalReport is the full snapshot produced for the latest bar,
// consumed by the notifier and the journal.
type SignalReport struct {
	Date             time.Time
	CurrentPrice     float64
	Signal           Signal
	Strength         Strength
	Support          float64
	Resistance       float64
	BuyThreshold     float64
	SellThreshold    float64
	RangeWidth       float64
	PositionInRange  float64 // 0 = at support, 100 = at resistance
	UpsidePotential  float64
	UpsidePct        float64
	DownsideRisk     float64
	DownsidePct      float64
	RiskRewardRatio  float64 // only meaningful for BUY
	Peaks            []Extremum
	Troughs          []Extremum
	LookbackDays     int
}
