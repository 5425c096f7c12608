package lease

import (
	"testing"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var termStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestEndDatePerUnit(t *testing.T) {
	cases := []struct {
		unit  enums.LeasePeriodUnit
		count int
		want  time.Time
	}{
		{enums.LeasePeriodDaily, 1, termStart.AddDate(0, 0, 1)},
		{enums.LeasePeriodDaily, 10, termStart.AddDate(0, 0, 10)},
		{enums.LeasePeriodWeekly, 2, termStart.AddDate(0, 0, 14)},
		{enums.LeasePeriodMonthly, 1, termStart.AddDate(0, 0, 30)},
		{enums.LeasePeriodMonthly, 3, termStart.AddDate(0, 0, 90)},
		{enums.LeasePeriodYearly, 1, termStart.AddDate(0, 0, 365)},
	}
	for _, tc := range cases {
		got, ok := EndDate(termStart, tc.unit, tc.count)
		require.True(t, ok, "unit %s count %d", tc.unit, tc.count)
		require.Equal(t, tc.want, got, "unit %s count %d", tc.unit, tc.count)
	}
}

func TestEndDateMonthIsAlwaysThirtyDays(t *testing.T) {
	// February: a calendar month would land on March 1st or 2nd, the fixed
	// 30-day unit lands on March 3rd.
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	got, ok := EndDate(feb, enums.LeasePeriodMonthly, 1)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestEndDateRejectsInvalidInputs(t *testing.T) {
	_, ok := EndDate(termStart, enums.LeasePeriodDaily, 0)
	require.False(t, ok)

	_, ok = EndDate(termStart, enums.LeasePeriodDaily, -3)
	require.False(t, ok)

	_, ok = EndDate(time.Time{}, enums.LeasePeriodDaily, 1)
	require.False(t, ok)

	_, ok = EndDate(termStart, enums.LeasePeriodUnit("quarterly"), 1)
	require.False(t, ok)
}

func TestPriceFor(t *testing.T) {
	price := PriceFor(decimal.RequireFromString("1050.50"), 3)
	require.True(t, price.Equal(decimal.RequireFromString("3151.50")), "price %s", price)
}
