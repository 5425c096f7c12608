package lease

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Term is a fully derived lease term.
type Term struct {
	Unit      enums.LeasePeriodUnit
	Count     int
	StartDate time.Time
	EndDate   time.Time
}

// EndDate derives the lease end from start + count × unit-days. Day counts
// are fixed per unit (a month is always 30 days, a year always 365), so the
// same inputs always produce the same end date. Returns ok=false when the
// unit is unknown, the count is below one, or the start date is zero.
func EndDate(start time.Time, unit enums.LeasePeriodUnit, count int) (time.Time, bool) {
	if start.IsZero() || count < 1 || !unit.IsValid() {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, count*unit.Days()), true
}

// NewTerm validates the inputs and derives the end date.
func NewTerm(start time.Time, unit enums.LeasePeriodUnit, count int) (Term, bool) {
	end, ok := EndDate(start, unit, count)
	if !ok {
		return Term{}, false
	}
	return Term{
		Unit:      unit,
		Count:     count,
		StartDate: start,
		EndDate:   end,
	}, true
}

// PriceFor multiplies the per-unit price by the period count.
func PriceFor(unitPrice decimal.Decimal, count int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(count)))
}
