package model

import "time"

// ExtremumKind distinguishes peaks from troughs.
type ExtremumKind string

const (
	KindPeak   ExtremumKind = "peak"
	KindTrough ExtremumKind = "trough"
)

// Extremum is a local maximum or minimum in a price window.
type Extremum struct {
	Date  time.Time
	Price float64
	Index int // position within the analysis window
	Kind  ExtremumKind
}

// Levels holds a derived support/resistance pair. Resistance below support
// is a valid (degenerate) output signaling an unreliable range.
type Levels struct {
	Support    float64
	Resistance float64
}

// Width returns the range width. Negative for a degenerate range.
func (l Levels) Width() float64 {
	return l.Resistance - l.Support
}

// Degenerate reports whether the range is unusable for threshold math.
func (l Levels) Degenerate() bool {
	return l.Resistance <= l.Support
}
