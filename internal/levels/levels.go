package levels

import (
	"errors"
	"time"

	"RangeTrader/internal/model"
)

// ErrInsufficientData is returned when no peaks or no troughs are available,
// leaving the level estimate indeterminate.
var ErrInsufficientData = errors.New("insufficient extrema for level estimation")

// Estimate computes time-weighted support and resistance as of the given date.
// Each extremum contributes weight 1/(daysAgo+1), so older points still count
// but fresher ones dominate as the trading range shifts.
func Estimate(peaks, troughs []model.Extremum, asOf time.Time) (model.Levels, error) {
	if len(peaks) == 0 || len(troughs) == 0 {
		return model.Levels{}, ErrInsufficientData
	}
	return model.Levels{
		Support:    weightedMean(troughs, asOf),
		Resistance: weightedMean(peaks, asOf),
	}, nil
}

// weightedMean averages extremum prices with recency weights. Weights are
// strictly positive, so the weight sum can never be zero for non-empty input.
func weightedMean(points []model.Extremum, asOf time.Time) float64 {
	var weightedSum, weightSum float64
	for _, p := range points {
		daysAgo := daysBetween(p.Date, asOf)
		w := 1.0 / float64(daysAgo+1)
		weightedSum += p.Price * w
		weightSum += w
	}
	return weightedSum / weightSum
}

// PositionInRange returns where price sits between support (0) and
// resistance (100), clamped to [0, 100]. A degenerate range yields 50.
func PositionInRange(price float64, lv model.Levels) float64 {
	width := lv.Width()
	if width <= 0 {
		return 50
	}
	pos := (price - lv.Support) / width * 100
	if pos < 0 {
		pos = 0
	}
	if pos > 100 {
		pos = 100
	}
	return pos
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
