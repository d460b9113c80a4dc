package fuelprice

import "time"

// PriceTable answers "what was the petrol rate on this date" over a
// sorted price history. An empty table always answers with the fallback
// rate seeded at construction.
type PriceTable struct {
	points []PricePoint
}

// NewPriceTable builds a lookup table from a sorted history. When the
// history is empty, a single fallback point is seeded at seedDate so
// lookups still work.
func NewPriceTable(points []PricePoint, fallbackRate float64, seedDate time.Time) *PriceTable {
	if len(points) == 0 {
		points = []PricePoint{{Date: seedDate, Price: fallbackRate}}
	}
	return &PriceTable{points: points}
}

// RateFor returns the latest known price on or before the target's
// calendar date, or the earliest known price when nothing precedes it.
// Comparison is by date only: a purchase at 03:00 on a price-change day
// gets that day's price even though the history point is parsed at
// midnight in another zone.
func (t *PriceTable) RateFor(target time.Time) float64 {
	day := dateOf(target)
	for i := len(t.points) - 1; i >= 0; i-- {
		if !dateOf(t.points[i].Date).After(day) {
			return t.points[i].Price
		}
	}
	return t.points[0].Price
}

// dateOf strips the time of day and zone, keeping the calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
