package analytics

import (
	"sort"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// lookbackMonths is the analytics window: the current month plus the five
// before it.
const lookbackMonths = 5

// Bucket is one month of aggregated income and expense. Months are kept as a
// (year, month 1..12) pair internally; the short label exists only for the
// interface boundary.
type Bucket struct {
	Year    int
	Month   time.Month
	Income  float64
	Expense float64
}

// Label returns the short English month name ("Jan").
func (b Bucket) Label() string {
	return b.Month.String()[:3]
}

// WindowStart returns the first instant of the month five calendar months
// before now, in now's location.
func WindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-lookbackMonths, 1, 0, 0, 0, 0, now.Location())
}

// MonthlyBuckets groups transactions into per-month income/expense totals,
// sorted by actual calendar order. Sorting by (year, month) rather than by
// first occurrence keeps the series usable as forecaster input even when the
// store hands entries back out of date order.
func MonthlyBuckets(txns []core.Transaction) []Bucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	totals := make(map[monthKey]*Bucket)
	for _, t := range txns {
		key := monthKey{t.OccurredAt.Year(), t.OccurredAt.Month()}
		b, ok := totals[key]
		if !ok {
			b = &Bucket{Year: key.year, Month: key.month}
			totals[key] = b
		}
		switch t.Kind {
		case core.Income:
			b.Income += t.Amount
		case core.Expense:
			b.Expense += t.Amount
		}
	}

	buckets := make([]Bucket, 0, len(totals))
	for _, b := range totals {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
