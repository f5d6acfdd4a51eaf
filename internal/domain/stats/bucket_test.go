package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWeeklySkeletonHasSevenZeroBucketsOldestFirst(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	buckets := weeklySkeleton(now)

	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2025-03-04" {
		t.Fatalf("expected oldest bucket 2025-03-04, got %s", buckets[0].Key)
	}
	if buckets[6].Key != "2025-03-10" {
		t.Fatalf("expected newest bucket 2025-03-10, got %s", buckets[6].Key)
	}
	for _, b := range buckets {
		if !b.Income.IsZero() || !b.Expense.IsZero() {
			t.Fatalf("expected zero sums in bucket %s, got income=%s expense=%s", b.Key, b.Income, b.Expense)
		}
	}
}

func TestWeeklySkeletonLabelsAreWeekdays(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) // a Monday
	buckets := weeklySkeleton(now)

	if buckets[6].Label != "Mon" {
		t.Fatalf("expected newest bucket labelled Mon, got %s", buckets[6].Label)
	}
	if buckets[0].Label != "Tue" {
		t.Fatalf("expected oldest bucket labelled Tue, got %s", buckets[0].Label)
	}
}

func TestMonthlySkeletonHasTwelveBucketsOldestFirst(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	buckets := monthlySkeleton(now)

	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2024-04" {
		t.Fatalf("expected oldest bucket 2024-04, got %s", buckets[0].Key)
	}
	if buckets[11].Key != "2025-03" {
		t.Fatalf("expected newest bucket 2025-03, got %s", buckets[11].Key)
	}
	if buckets[11].Label != "Mar 25" {
		t.Fatalf("expected newest label Mar 25, got %s", buckets[11].Label)
	}
}

func TestWeeklyWindowStartMatchesOldestBucketDay(t *testing.T) {
	// non-UTC server: the window must open at local midnight of the
	// oldest bucket day, not at a UTC day boundary
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2025, time.March, 10, 1, 30, 0, 0, loc)

	from := weeklyWindowStart(now)
	buckets := weeklySkeleton(now)

	if from.Format("2006-01-02") != buckets[0].Key {
		t.Fatalf("window start %s does not open the oldest bucket %s", from.Format("2006-01-02"), buckets[0].Key)
	}
	if from.Hour() != 0 || from.Minute() != 0 || from.Second() != 0 {
		t.Fatalf("expected window start at midnight, got %s", from)
	}
	if from.Location() != loc {
		t.Fatalf("expected window start in %v, got %v", loc, from.Location())
	}
}

func TestMonthlyWindowStartMatchesOldestBucketMonth(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	now := time.Date(2025, time.March, 10, 23, 45, 0, 0, loc)

	from := monthlyWindowStart(now)
	buckets := monthlySkeleton(now)

	if from.Format("2006-01") != buckets[0].Key {
		t.Fatalf("window start %s does not open the oldest bucket %s", from.Format("2006-01"), buckets[0].Key)
	}
	if from.Day() != 1 || from.Hour() != 0 {
		t.Fatalf("expected first instant of the month, got %s", from)
	}
	if from.Location() != loc {
		t.Fatalf("expected window start in %v, got %v", loc, from.Location())
	}
}

func TestFoldIntoAccumulatesByKey(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	buckets := weeklySkeleton(now)

	foldInto(buckets, "2025-03-08", true, decimal.RequireFromString("100"))
	foldInto(buckets, "2025-03-08", false, decimal.RequireFromString("40"))
	foldInto(buckets, "2025-03-08", false, decimal.RequireFromString("10"))

	var target *Bucket
	for i := range buckets {
		if buckets[i].Key == "2025-03-08" {
			target = &buckets[i]
		}
	}
	if target == nil {
		t.Fatal("bucket 2025-03-08 not found")
	}
	if !target.Income.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected income 100, got %s", target.Income)
	}
	if !target.Expense.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected expense 50, got %s", target.Expense)
	}
}

func TestFoldIntoIgnoresKeysOutsideSkeleton(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	buckets := weeklySkeleton(now)

	foldInto(buckets, "2024-01-01", true, decimal.RequireFromString("999"))

	for _, b := range buckets {
		if !b.Income.IsZero() {
			t.Fatalf("expected no bucket to absorb out-of-range key, bucket %s has income %s", b.Key, b.Income)
		}
	}
}
