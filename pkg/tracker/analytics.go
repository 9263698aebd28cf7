package tracker

import (
	"math"
)

const trendWindow = 3

// CalculateTrend looks at the direction of the last three observations.
func CalculateTrend(prices []Observation) Trend {
	if len(prices) < 2 {
		return InsufficientData
	}

	window := prices
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	increases, decreases := 0, 0
	for i := 1; i < len(window); i++ {
		switch {
		case window[i].Price > window[i-1].Price:
			increases++
		case window[i].Price < window[i-1].Price:
			decreases++
		}
	}

	switch {
	case increases > decreases:
		return Rising
	case decreases > increases:
		return Falling
	default:
		return Stable
	}
}

// ComputeStats returns false when the product has no observations.
//
// Variance is the population variance; volatility is its square root as a
// percentage of the mean, and 0 for a single observation or a zero mean.
func ComputeStats(p Product) (Stats, bool) {
	n := len(p.Prices)
	if n == 0 {
		return Stats{}, false
	}

	first, last := p.Prices[0], p.Prices[n-1]
	s := Stats{
		DataPoints: n,
		First:      first.Price,
		Latest:     last.Price,
		Min:        first.Price,
		Max:        first.Price,
		MinDate:    first.Date.Time,
		MaxDate:    first.Date.Time,
		FirstCheck: first.Date.Time,
		LastCheck:  last.Date.Time,
		Trend:      CalculateTrend(p.Prices),
	}

	sum := 0.0
	for _, o := range p.Prices {
		sum += o.Price
		// strict comparisons keep the first occurrence
		if o.Price < s.Min {
			s.Min, s.MinDate = o.Price, o.Date.Time
		}
		if o.Price > s.Max {
			s.Max, s.MaxDate = o.Price, o.Date.Time
		}
	}
	s.Mean = sum / float64(n)

	s.Change = s.Latest - s.First
	if s.First != 0 {
		s.ChangePercent = s.Change / s.First * 100
	}

	s.Spread = s.Max - s.Min
	if s.Min != 0 {
		s.SpreadPercent = s.Spread / s.Min * 100
		s.HasSpreadPercent = true
	}

	if n > 1 {
		squares := 0.0
		for _, o := range p.Prices {
			d := o.Price - s.Mean
			squares += d * d
		}
		s.Variance = squares / float64(n)
		s.StdDev = math.Sqrt(s.Variance)
		if s.Mean != 0 {
			s.Volatility = s.StdDev / s.Mean * 100
		}
	}

	return s, true
}

// History pairs every observation with its change against the previous one.
func History(p Product) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(p.Prices))
	for i, o := range p.Prices {
		e := HistoryEntry{Observation: o}
		if i > 0 {
			c := NewChange(p.Prices[i-1].Price, o.Price)
			e.Change = &c
		}
		entries = append(entries, e)
	}
	return entries
}

// OverallChange compares the latest observation with the first one. It
// returns false for fewer than two observations.
func OverallChange(p Product) (Change, bool) {
	if len(p.Prices) < 2 {
		return Change{}, false
	}
	return NewChange(p.Prices[0].Price, p.Prices[len(p.Prices)-1].Price), true
}

// DropAlert reports whether p's latest price fell from the previous one by at
// least threshold percent. Products with fewer than two observations, or a
// previous price of 0, never alert.
func DropAlert(p Product, threshold float64) (Alert, bool) {
	n := len(p.Prices)
	if n < 2 {
		return Alert{}, false
	}

	previous, current := p.Prices[n-2].Price, p.Prices[n-1].Price
	if previous == 0 {
		return Alert{}, false
	}

	drop := (previous - current) / previous * 100
	// a NaN threshold matches nothing
	if !(drop >= threshold) {
		return Alert{}, false
	}
	return Alert{
		Name:     p.Name,
		URL:      p.URL,
		Previous: previous,
		Current:  current,
		Drop:     drop,
	}, true
}
