package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalChargeThreeDays(t *testing.T) {
	total := TotalCharge(date("2025-01-01"), date("2025-01-04"), 100.00)
	require.Equal(t, 300.00, total)
}

func TestTotalChargeSameDay(t *testing.T) {
	total := TotalCharge(date("2025-01-01"), date("2025-01-01"), 100.00)
	require.Equal(t, 0.00, total)
}

func TestTotalChargeReturnBeforePickup(t *testing.T) {
	total := TotalCharge(date("2025-01-04"), date("2025-01-01"), 100.00)
	require.Equal(t, 0.00, total)
}

func TestTotalChargePartialDayRoundsUp(t *testing.T) {
	pickup := date("2025-01-01")
	expectedReturn := pickup.Add(36 * time.Hour)
	require.Equal(t, 2, ChargeableDays(pickup, expectedReturn))
	require.Equal(t, 150.00, TotalCharge(pickup, expectedReturn, 75.00))
}
