package finance

import "time"

// AgingBucket classifies an outstanding amount by elapsed days since its due
// date. Thresholds are inclusive: day 30 is still CURRENT, day 31 falls into
// DAYS_31_60.
type AgingBucket string

const (
	AgingBucketCurrent  AgingBucket = "CURRENT"      // 0-30 days
	AgingBucket31To60   AgingBucket = "DAYS_31_60"   // 31-60 days
	AgingBucket61To90   AgingBucket = "DAYS_61_90"   // 61-90 days
	AgingBucket90Plus   AgingBucket = "DAYS_90_PLUS" // over 90 days
)

// IsValid checks if the bucket is a valid AgingBucket
func (b AgingBucket) IsValid() bool {
	switch b {
	case AgingBucketCurrent, AgingBucket31To60, AgingBucket61To90, AgingBucket90Plus:
		return true
	}
	return false
}

// String returns the string representation of AgingBucket
func (b AgingBucket) String() string {
	return string(b)
}

// ClassifyAging assigns exactly one bucket to a non-negative days-overdue
// count. Negative input is treated as current.
func ClassifyAging(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 30:
		return AgingBucketCurrent
	case daysOverdue <= 60:
		return AgingBucket31To60
	case daysOverdue <= 90:
		return AgingBucket61To90
	default:
		return AgingBucket90Plus
	}
}

// DaysOverdue returns the whole days elapsed since the due date, floored at
// zero. Items without a due date are never overdue. The reference time is
// always injected by the caller so the computation stays deterministic.
func DaysOverdue(now time.Time, dueDate *time.Time) int {
	if dueDate == nil || !now.After(*dueDate) {
		return 0
	}
	return int(now.Sub(*dueDate).Hours() / 24)
}
