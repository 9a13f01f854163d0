package pricing

import (
	"math"
	"time"
)

// dayUnit is the billing unit for a rental. Any started 24-hour block
// between pickup and the expected return counts as a full day.
const dayUnit = 24 * time.Hour

// ChargeableDays returns the number of billable days between pickup
// and the expected return date. Partial days round up; a zero or
// negative span yields zero days.
func ChargeableDays(pickup, expectedReturn time.Time) int {
	diff := expectedReturn.Sub(pickup)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(float64(diff) / float64(dayUnit)))
}

// TotalCharge computes the total charge for a rental: chargeable days
// times the daily rate, never negative.
func TotalCharge(pickup, expectedReturn time.Time, dailyRate float64) float64 {
	days := ChargeableDays(pickup, expectedReturn)
	if days <= 0 {
		return 0
	}
	return float64(days) * dailyRate
}
