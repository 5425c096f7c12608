package enums

import "fmt"

// LeasePeriodUnit is the billing unit for a software lease.
type LeasePeriodUnit string

const (
	LeasePeriodDaily   LeasePeriodUnit = "daily"
	LeasePeriodWeekly  LeasePeriodUnit = "weekly"
	LeasePeriodMonthly LeasePeriodUnit = "monthly"
	LeasePeriodYearly  LeasePeriodUnit = "yearly"
)

var validLeasePeriodUnits = []LeasePeriodUnit{
	LeasePeriodDaily,
	LeasePeriodWeekly,
	LeasePeriodMonthly,
	LeasePeriodYearly,
}

// Days returns the fixed day-count approximation for the unit. Months are 30
// days and years 365 by contract; lease terms do not use calendar arithmetic.
func (l LeasePeriodUnit) Days() int {
	switch l {
	case LeasePeriodDaily:
		return 1
	case LeasePeriodWeekly:
		return 7
	case LeasePeriodMonthly:
		return 30
	case LeasePeriodYearly:
		return 365
	}
	return 0
}

// String implements fmt.Stringer.
func (l LeasePeriodUnit) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeasePeriodUnit.
func (l LeasePeriodUnit) IsValid() bool {
	for _, candidate := range validLeasePeriodUnits {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeasePeriodUnit converts raw input into a LeasePeriodUnit.
func ParseLeasePeriodUnit(value string) (LeasePeriodUnit, error) {
	for _, candidate := range validLeasePeriodUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lease period unit %q", value)
}
