package strategy

import "RangeTrader/internal/model"

// Strategy produces one trading decision per bar. ProduceSignal receives the
// history up to and including the bar under evaluation and must never assume
// more data exists beyond the end of the slice; the engine calls it once per
// bar in chronological order.
type Strategy interface {
	Name() string
	ProduceSignal(bars []model.OHLCV) model.Signal
}
