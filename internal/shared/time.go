package shared

import "time"

// MonthStart floors t to the first instant of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthsBack returns the month start n months before t's month. Aggregation
// queries use it as their lower bound so the window always covers whole
// months.
func MonthsBack(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, -n, 0)
}
