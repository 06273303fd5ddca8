package detector

import (
	"sort"

	"RangeTrader/internal/model"
)

// Prominence threshold applied to raw local extrema to suppress single-bar noise.
const defaultProminence = 0.5

// FindDistributed finds well-distributed peaks and troughs over the last
// lookback bars. If fewer bars are available the full window is used.
// Returned slices are ordered chronologically and hold at most the requested
// counts; both may be empty when no extrema survive filtering.
func FindDistributed(bars []model.OHLCV, lookback, minDistance, numPeaks, numTroughs int) (peaks, troughs []model.Extremum) {
	if lookback > len(bars) {
		lookback = len(bars)
	}
	window := bars[len(bars)-lookback:]
	prices := model.Closes(window)

	peakIdx := localMaxima(prices, minDistance, defaultProminence)
	negated := make([]float64, len(prices))
	for i, p := range prices {
		negated[i] = -p
	}
	troughIdx := localMaxima(negated, minDistance, defaultProminence)

	peaks = make([]model.Extremum, 0, len(peakIdx))
	for _, idx := range peakIdx {
		peaks = append(peaks, model.Extremum{
			Date:  window[idx].Date,
			Price: prices[idx],
			Index: idx,
			Kind:  model.KindPeak,
		})
	}
	troughs = make([]model.Extremum, 0, len(troughIdx))
	for _, idx := range troughIdx {
		troughs = append(troughs, model.Extremum{
			Date:  window[idx].Date,
			Price: prices[idx],
			Index: idx,
			Kind:  model.KindTrough,
		})
	}

	// Rank peaks highest-first and troughs lowest-first before distribution.
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Price > peaks[j].Price })
	sort.SliceStable(troughs, func(i, j int) bool { return troughs[i].Price < troughs[j].Price })

	peaks = filterDistributed(peaks, minDistance, numPeaks)
	troughs = filterDistributed(troughs, minDistance, numTroughs)

	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Date.Before(peaks[j].Date) })
	sort.SliceStable(troughs, func(i, j int) bool { return troughs[i].Date.Before(troughs[j].Date) })

	return peaks, troughs
}

// localMaxima returns indices of local maxima with at least the given
// prominence, keeping only the highest of any cluster closer than minDistance.
func localMaxima(prices []float64, minDistance int, minProminence float64) []int {
	var candidates []int
	for i := 1; i < len(prices)-1; i++ {
		if prices[i] > prices[i-1] && prices[i] > prices[i+1] {
			if prominence(prices, i) >= minProminence {
				candidates = append(candidates, i)
			}
		}
	}
	if minDistance <= 1 || len(candidates) < 2 {
		return candidates
	}

	// Highest peaks win: examine candidates tallest-first and drop any
	// unexamined neighbor within minDistance.
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return prices[candidates[order[a]]] > prices[candidates[order[b]]]
	})

	keep := make([]bool, len(candidates))
	removed := make([]bool, len(candidates))
	for _, oi := range order {
		if removed[oi] {
			continue
		}
		keep[oi] = true
		for j := range candidates {
			if j == oi || removed[j] || keep[j] {
				continue
			}
			if abs(candidates[j]-candidates[oi]) < minDistance {
				removed[j] = true
			}
		}
	}

	var result []int
	for i, k := range keep {
		if k {
			result = append(result, candidates[i])
		}
	}
	return result
}

// prominence measures how far a peak stands above the higher of the two
// valley floors separating it from taller terrain (or the window edge).
func prominence(prices []float64, peak int) float64 {
	height := prices[peak]

	leftMin := height
	for i := peak - 1; i >= 0; i-- {
		if prices[i] > height {
			break
		}
		if prices[i] < leftMin {
			leftMin = prices[i]
		}
	}

	rightMin := height
	for i := peak + 1; i < len(prices); i++ {
		if prices[i] > height {
			break
		}
		if prices[i] < rightMin {
			rightMin = prices[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return height - base
}

// filterDistributed greedily selects ranked points while enforcing a minimum
// index separation, stopping once numPoints are accepted.
func filterDistributed(points []model.Extremum, minDistance, numPoints int) []model.Extremum {
	if len(points) <= numPoints {
		return points
	}

	selected := make([]model.Extremum, 0, numPoints)
	for _, point := range points {
		farEnough := true
		for _, s := range selected {
			if abs(point.Index-s.Index) < minDistance {
				farEnough = false
				break
			}
		}
		if farEnough {
			selected = append(selected, point)
		}
		if len(selected) >= numPoints {
			break
		}
	}
	return selected
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
