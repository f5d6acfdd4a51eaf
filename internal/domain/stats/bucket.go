package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is one aggregation slot of a period chart
type Bucket struct {
	Key     string          `json:"key"`   // day: 2006-01-02, month: 2006-01
	Label   string          `json:"label"` // day: Mon, month: Jan 06
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

const (
	weeklyDays    = 7
	monthlyMonths = 12
)

// weeklySkeleton returns one zero-sum bucket per calendar day for the
// trailing week ending at now, oldest first
func weeklySkeleton(now time.Time) []Bucket {
	buckets := make([]Bucket, 0, weeklyDays)
	for i := weeklyDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		buckets = append(buckets, Bucket{
			Key:     day.Format("2006-01-02"),
			Label:   day.Format("Mon"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}
	return buckets
}

// monthlySkeleton returns one zero-sum bucket per calendar month for the
// trailing twelve months ending at now, oldest first
func monthlySkeleton(now time.Time) []Bucket {
	buckets := make([]Bucket, 0, monthlyMonths)
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := monthlyMonths - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		buckets = append(buckets, Bucket{
			Key:     month.Format("2006-01"),
			Label:   month.Format("Jan 06"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}
	return buckets
}

// weeklyWindowStart returns midnight of the oldest weekly bucket day, in
// now's location so the query window lines up with the skeleton keys.
func weeklyWindowStart(now time.Time) time.Time {
	d := now.AddDate(0, 0, -(weeklyDays - 1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// monthlyWindowStart returns the first instant of the oldest monthly bucket
func monthlyWindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(monthlyMonths - 1), 0)
}

// foldInto accumulates a transaction's amount into its bucket, matched by
// key. Transactions outside the skeleton range are ignored.
func foldInto(buckets []Bucket, key string, income bool, amount decimal.Decimal) {
	for i := range buckets {
		if buckets[i].Key != key {
			continue
		}
		if income {
			buckets[i].Income = buckets[i].Income.Add(amount)
		} else {
			buckets[i].Expense = buckets[i].Expense.Add(amount)
		}
		return
	}
}
